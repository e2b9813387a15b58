// Package cmd provides the CLI commands for the smokefree application.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/api"
	"github.com/xvierd/smokefree-cli/internal/adapters/notification"
	"github.com/xvierd/smokefree-cli/internal/adapters/tui"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
	"github.com/xvierd/smokefree-cli/internal/services"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	debugLog   bool

	// Global dependencies
	appConfig        *config.Config
	storageAdapter   ports.Storage
	apiClient        *api.Client
	notifier         *notification.Notifier
	profileService   *services.ProfileService
	recoveryService  *services.RecoveryService
	cravingService   *services.CravingService
	biometricService *services.BiometricService
	chatService      *services.ChatService
	helpService      *services.HelpService
	accountService   *services.AccountService
	stateService     *services.StateService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smokefree",
	Short: "smokefree - track your recovery after quitting smoking",
	Long: `smokefree shows how your body recovers after your last cigarette:
lung, heart, energy and taste/smell progress, the next health milestone,
money saved, cravings beaten and an AI coach to talk to.

Run "smokefree" with no arguments to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDashboard,
}

// dashboardCmd is an explicit alias for the bare command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the recovery dashboard",
	RunE:  runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.smokefree/smokefree.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Also write debug logs to stderr")

	rootCmd.SetVersionTemplate(`{{printf "smokefree %s" .Version}}
`)
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := recoveryService.Dashboard(ctx)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), dashboardJSON(d))
	}

	model := tui.NewModel(d, tui.Sources{
		Dashboard:   func() (*domain.Dashboard, error) { return recoveryService.Dashboard(ctx) },
		Trend:       func() ([]domain.DayPoint, error) { return recoveryService.Trend(ctx) },
		Predictions: func() ([]domain.Prediction, error) { return recoveryService.Predictions(ctx) },
	}, &appConfig.Theme)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}

	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	switch m.Next {
	case tui.ExitChat:
		return runChatTUI(cmd)
	case tui.ExitBiometrics:
		return runBiometricsForm(cmd)
	}
	return nil
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func dayWord(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
