package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/serenelab/wellspring"
	"github.com/serenelab/wellspring/internal/presentation/tui"
	"github.com/serenelab/wellspring/pkg/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the mental wellness companion",
	Long: `Starts an interactive chat session. Conversation turns are persisted per
thread; use /new to start a fresh thread and /threads to list known ones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		assistant, _, err := newAssistant(cmd)
		if err != nil {
			return err
		}

		threadID, _ := cmd.Flags().GetString("thread")
		plain, _ := cmd.Flags().GetBool("plain")

		sess := session.New()
		if threadID != "" {
			history, err := assistant.History(cmd.Context(), threadID)
			if err != nil {
				return fmt.Errorf("resuming thread: %w", err)
			}
			sess.Resume(threadID, history)
		}

		interactive := term.IsTerminal(int(os.Stdin.Fd())) && !plain
		render := func(s string) string { return s }
		if interactive {
			tui.PrintBanner()
			r := tui.NewRenderer()
			render = func(s string) string {
				out, err := r(s)
				if err != nil {
					return s
				}
				return out
			}
			fmt.Printf("Thread: %s (%s)\n", sess.ThreadID(), sess.Name(sess.ThreadID()))
			fmt.Println("Type /new for a fresh thread, /threads to list, exit to quit.")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return nil
			}
			input := strings.TrimSpace(line)

			switch {
			case input == "":
				continue
			case input == "exit" || input == "quit":
				fmt.Println("Take care!")
				return nil
			case input == "/new":
				id := sess.Reset()
				fmt.Printf("Started new thread %s\n", id)
				continue
			case input == "/threads":
				printThreads(ctx, assistant, sess)
				continue
			}

			reply, err := assistant.Chat(ctx, sess.ThreadID(), input)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			sess.NameFromFirstMessage(sess.ThreadID(), input)
			fmt.Println(render(reply))
		}
	},
}

func printThreads(ctx context.Context, assistant *wellspring.Assistant, sess *session.Session) {
	threads, err := assistant.Threads(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	for _, id := range threads {
		marker := " "
		if id == sess.ThreadID() {
			marker = "*"
		}
		fmt.Printf("%s %s  %s\n", marker, id, sess.Name(id))
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("thread", "t", "", "Thread id to resume")
	chatCmd.Flags().Bool("plain", false, "Disable markdown rendering and banner")
}
