package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serenelab/wellspring"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wellspring",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wellspring version %s\n", wellspring.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
