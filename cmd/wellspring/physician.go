package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/serenelab/wellspring/internal/agents/physician"
)

var physicianCmd = &cobra.Command{
	Use:   "physician",
	Short: "Symptom triage and clinic lookup",
}

func intakeFromFlags(cmd *cobra.Command) (physician.Intake, error) {
	intake := physician.Intake{}
	intake.Symptoms, _ = cmd.Flags().GetString("symptoms")
	intake.Duration, _ = cmd.Flags().GetString("duration")
	intake.Chronic, _ = cmd.Flags().GetString("chronic")
	intake.Medication, _ = cmd.Flags().GetString("medication")
	intake.Severity, _ = cmd.Flags().GetInt("severity")
	intake.Location, _ = cmd.Flags().GetString("location")
	return intake, intake.Validate()
}

func addIntakeFlags(cmd *cobra.Command) {
	cmd.Flags().String("symptoms", "", "Current symptoms")
	cmd.Flags().String("duration", "", "How long the symptoms have lasted")
	cmd.Flags().String("chronic", "none", "Known chronic conditions")
	cmd.Flags().String("medication", "none", "Current medications")
	cmd.Flags().Int("severity", 0, "Severity from 1 to 10")
	cmd.Flags().String("location", "", "City or area (for clinic lookup)")
}

var triageCmd = &cobra.Command{
	Use:   "triage",
	Short: "Get educational triage guidance for your symptoms",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}
		intake, err := intakeFromFlags(cmd)
		if err != nil {
			return err
		}

		triage, err := assistant.Physician().Triage(cmd.Context(), intake)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: triage degraded: %v\n", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(triage)
	},
}

var clinicsCmd = &cobra.Command{
	Use:   "clinics",
	Short: "List clinics near a location for your symptoms",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}
		intake, err := intakeFromFlags(cmd)
		if err != nil {
			return err
		}

		list, err := assistant.Physician().FindClinics(cmd.Context(), intake)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: clinic lookup degraded: %v\n", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	},
}

func init() {
	rootCmd.AddCommand(physicianCmd)
	physicianCmd.AddCommand(triageCmd)
	physicianCmd.AddCommand(clinicsCmd)
	addIntakeFlags(triageCmd)
	addIntakeFlags(clinicsCmd)
}
