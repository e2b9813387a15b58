package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local data",
	Long: `Permanently deletes your quit date, habits, cravings, biometric readings
and chat history from this machine. This cannot be undone.
Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			confirmed := false
			if err := confirm("Delete all local smokefree data?", &confirmed); err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if err := storageAdapter.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("failed to reset data: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "All data deleted. Fresh start.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
