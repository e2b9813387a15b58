package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	accountName     string
	accountEmail    string
	accountPassword string
	accountOTP      string
	accountYes      bool
)

// promptCredentials asks for whichever of email and password is missing.
func promptCredentials(withName bool) error {
	var fields []huh.Field
	if withName && accountName == "" {
		fields = append(fields, huh.NewInput().Title("Name").Value(&accountName))
	}
	if accountEmail == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&accountEmail))
	}
	if accountPassword == "" {
		fields = append(fields, huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&accountPassword))
	}
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeDracula()).Run()
}

// confirm asks a yes/no question.
func confirm(title string, value *bool) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Value(value),
	)).WithTheme(huh.ThemeDracula()).Run()
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to your smokefree account",
	Long:  `Log in to sync your quit plan. The API token is kept in the OS keyring.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptCredentials(false); err != nil {
			return err
		}
		sess, err := accountService.Login(cmd.Context(), accountEmail, accountPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"user_id": sess.UserID,
				"name":    sess.Name,
				"email":   sess.Email,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged in as %s\n", sess.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := accountService.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your remote account",
}

var accountRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := promptCredentials(true); err != nil {
			return err
		}
		if err := accountService.Register(cmd.Context(), accountName, accountEmail, accountPassword); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Account created. Log in with `smokefree login`.")
		return nil
	},
}

var accountForgotCmd = &cobra.Command{
	Use:   "forgot-password",
	Short: "Send a password reset code to your email",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := accountService.ForgotPassword(cmd.Context(), accountEmail); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📧 A reset code was sent to %s\n", accountEmail)
		return nil
	},
}

var accountResetCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password with the emailed code",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := accountService.ResetPassword(cmd.Context(), accountEmail, accountOTP, accountPassword); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Password updated.")
		return nil
	},
}

var accountSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push your habits and quit date to the account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := accountService.Sync(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Synced.")
		return nil
	},
}

var accountPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Copy your account profile to this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		rp, err := accountService.Pull(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), rp)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Pulled profile for %s\n", rp.Name)
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your remote account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !accountYes {
			confirmed := false
			if err := confirm("Delete your account? This cannot be undone.", &confirmed); err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}
		if err := accountService.DeleteAccount(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Account deleted.")
		return nil
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show your smoke-free streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, remote, err := accountService.Streak(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"current_streak":        stats.CurrentStreak,
				"longest_streak":        stats.LongestStreak,
				"total_smoke_free_days": stats.TotalSmokeFreeDays,
				"remote":                remote,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🔥 Current streak:  %s\n", dayWord(stats.CurrentStreak))
		fmt.Fprintf(cmd.OutOrStdout(), "   Longest streak:  %s\n", dayWord(stats.LongestStreak))
		fmt.Fprintf(cmd.OutOrStdout(), "   Total smoke-free: %s\n", dayWord(stats.TotalSmokeFreeDays))
		if !remote {
			fmt.Fprintln(cmd.OutOrStdout(), "   (local figures, log in to see your account streak)")
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, accountRegisterCmd, accountForgotCmd, accountResetCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "Account email")
	}
	for _, c := range []*cobra.Command{loginCmd, accountRegisterCmd, accountResetCmd} {
		c.Flags().StringVar(&accountPassword, "password", "", "Account password")
	}
	accountRegisterCmd.Flags().StringVar(&accountName, "name", "", "Your name")
	accountResetCmd.Flags().StringVar(&accountOTP, "otp", "", "Code from the reset email")
	accountDeleteCmd.Flags().BoolVarP(&accountYes, "yes", "y", false, "Skip confirmation prompt")

	accountCmd.AddCommand(accountRegisterCmd, accountForgotCmd, accountResetCmd, accountSyncCmd, accountPullCmd, accountDeleteCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, accountCmd, streakCmd)
}
