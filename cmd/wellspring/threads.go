package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var threadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "Manage conversation threads",
}

var threadsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List known thread ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}

		threads, err := assistant.Threads(cmd.Context())
		if err != nil {
			return err
		}
		if len(threads) == 0 {
			fmt.Println("No threads yet.")
			return nil
		}
		for _, id := range threads {
			fmt.Println(id)
		}
		return nil
	},
}

var threadsShowCmd = &cobra.Command{
	Use:   "show <thread-id>",
	Short: "Print the history of a thread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}

		history, err := assistant.History(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Println("No messages in this thread.")
			return nil
		}
		for _, msg := range history {
			fmt.Printf("[%s] %s\n", msg.Role, msg.Content)
		}
		return nil
	},
}

var threadsRmCmd = &cobra.Command{
	Use:   "rm <thread-id>",
	Short: "Delete a thread and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}

		if err := assistant.DeleteThread(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted thread %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(threadsCmd)
	threadsCmd.AddCommand(threadsLsCmd)
	threadsCmd.AddCommand(threadsShowCmd)
	threadsCmd.AddCommand(threadsRmCmd)
}
