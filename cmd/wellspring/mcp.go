package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/serenelab/wellspring"
	mcpAdapter "github.com/serenelab/wellspring/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server on stdio",
	Long:  `Exposes the wellness agents as MCP tools for AI hosts, speaking the protocol over stdin/stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing wellspring: %v\n", err)
			os.Exit(1)
		}

		server := mcpAdapter.NewServer(assistant.Diet(), assistant.Physician(), wellspring.Version)
		if err := server.ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
