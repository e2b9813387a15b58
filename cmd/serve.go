package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local JSON API and Prometheus metrics",
	Long: `Start a local HTTP server exposing the dashboard, trend, predictions,
cravings and coach as JSON under /api, plus /health and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = appConfig.Server.Addr
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🚀 Serving on http://%s (Ctrl+C to stop)\n", addr)
		if err := httpapi.New(addr, stateService).Start(setupSignalHandler()); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Server stopped.")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default: server.addr from config)")
	rootCmd.AddCommand(serveCmd)
}
