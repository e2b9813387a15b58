package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/tui"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

var (
	chatHistoryLimit int
	chatClear        bool
)

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Talk to the quit-smoking coach",
	Long: `Ask the AI coach a question. With a question the reply is printed and
the command exits; without one the chat screen opens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if chatClear {
			if err := chatService.Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear chat: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Conversation cleared.")
			return nil
		}

		if len(args) == 0 {
			return runChatTUI(cmd)
		}

		reply, err := chatService.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), chatJSON(reply))
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := chatService.History(cmd.Context(), chatHistoryLimit)
		if err != nil {
			return err
		}
		if jsonOutput {
			out := make([]map[string]interface{}, 0, len(history))
			for _, m := range history {
				out = append(out, chatJSON(m))
			}
			return printJSON(cmd.OutOrStdout(), out)
		}
		for _, m := range history {
			who := "Coach"
			if m.IsUser() {
				who = "You"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", who, m.Text)
		}
		return nil
	},
}

// runChatTUI opens the chat screen. It is also reached from the dashboard.
func runChatTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	history, err := chatService.History(ctx, chatHistoryLimit)
	if err != nil {
		return err
	}
	ask := func(q string) (*domain.ChatMessage, error) {
		return chatService.Ask(ctx, q)
	}
	model := tui.NewChatModel(history, ask, &appConfig.Theme)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}

func chatJSON(m *domain.ChatMessage) map[string]interface{} {
	return map[string]interface{}{
		"id":       m.ID,
		"role":     string(m.Role),
		"text":     m.Text,
		"sent_at":  m.SentAt.Format(timestampLayout),
		"fallback": m.Fallback,
	}
}

func init() {
	chatCmd.Flags().BoolVar(&chatClear, "clear", false, "Delete the stored conversation")
	chatCmd.PersistentFlags().IntVar(&chatHistoryLimit, "limit", 50, "How many past messages to load (0 for all)")

	chatCmd.AddCommand(chatHistoryCmd)
	rootCmd.AddCommand(chatCmd)
}
