package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serenelab/wellspring/internal/presentation/graph"
	"github.com/serenelab/wellspring/pkg/workflow"
)

var graphCmd = &cobra.Command{
	Use:   "graph <diet|triage|clinics|chat>",
	Short: "Print an agent workflow as a Mermaid flowchart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}

		var g *workflow.Graph
		switch args[0] {
		case "diet":
			g = assistant.Diet().Graph()
		case "triage":
			g = assistant.Physician().TriageGraph()
		case "clinics":
			g = assistant.Physician().ClinicGraph()
		case "chat":
			g = assistant.Companion().Graph()
		default:
			return fmt.Errorf("unknown graph %q (want diet, triage, clinics, or chat)", args[0])
		}

		fmt.Print(graph.GenerateMermaid(g, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
