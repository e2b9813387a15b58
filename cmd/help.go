package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	supportSubject string
	supportMessage string
)

var helpCenterCmd = &cobra.Command{
	Use:   "help-center [query]",
	Short: "Browse or search help articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		topics := helpService.Search(cmd.Context(), strings.Join(args, " "))

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), topics)
		}
		if len(topics) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matching articles. Try `smokefree support` to ask us directly.")
			return nil
		}
		for i, t := range topics {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "❓ %s  [%s]\n", t.Question, t.Category)
			fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", t.Answer)
		}
		return nil
	},
}

var supportCmd = &cobra.Command{
	Use:   "support",
	Short: "Open a support ticket",
	Long:  `Send a message to the support team. Requires an account.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if supportSubject == "" || supportMessage == "" {
			form := huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Subject").Value(&supportSubject),
				huh.NewText().Title("Message").Value(&supportMessage),
			)).WithTheme(huh.ThemeDracula())
			if err := form.Run(); err != nil {
				return err
			}
		}

		id, err := accountService.SubmitTicket(cmd.Context(), supportSubject, supportMessage)
		if err != nil {
			return fmt.Errorf("failed to submit ticket: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"ticket_id": id})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📨 Ticket %s submitted. We'll get back to you by email.\n", id)
		return nil
	},
}

func init() {
	supportCmd.Flags().StringVar(&supportSubject, "subject", "", "Ticket subject")
	supportCmd.Flags().StringVar(&supportMessage, "message", "", "Ticket message")

	rootCmd.AddCommand(helpCenterCmd, supportCmd)
}
