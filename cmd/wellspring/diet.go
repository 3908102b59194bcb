package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/serenelab/wellspring/internal/agents/diet"
)

var dietCmd = &cobra.Command{
	Use:   "diet",
	Short: "Generate a 7-day meal plan",
	Long: `Computes BMR/TDEE from your profile and asks the model for a structured
meal plan. The result is printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}

		req := diet.Request{}
		req.Age, _ = cmd.Flags().GetInt("age")
		req.Gender, _ = cmd.Flags().GetString("gender")
		req.HeightCM, _ = cmd.Flags().GetFloat64("height")
		req.WeightKG, _ = cmd.Flags().GetFloat64("weight")
		req.Activity, _ = cmd.Flags().GetString("activity")
		req.Goal, _ = cmd.Flags().GetString("goal")
		req.Preference, _ = cmd.Flags().GetString("preference")

		if err := req.Validate(); err != nil {
			return err
		}

		plan, err := assistant.Diet().Plan(cmd.Context(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: plan degraded: %v\n", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	},
}

func init() {
	rootCmd.AddCommand(dietCmd)
	dietCmd.Flags().Int("age", 0, "Age in years")
	dietCmd.Flags().String("gender", "", "Gender (Male/Female)")
	dietCmd.Flags().Float64("height", 0, "Height in centimeters")
	dietCmd.Flags().Float64("weight", 0, "Weight in kilograms")
	dietCmd.Flags().String("activity", "moderate", "Activity level: sedentary, light, moderate, active, very active")
	dietCmd.Flags().String("goal", "Maintain Weight", "Goal: Lose Weight, Maintain Weight, Gain Muscle, Improve Overall Health")
	dietCmd.Flags().String("preference", "", "Dietary preference, e.g. vegetarian")
}
