package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05"

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long:  `Display days smoke-free, recovery per body system, the next milestone and money saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := recoveryService.Dashboard(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get dashboard: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), dashboardJSON(d))
		}

		printStatusText(cmd.OutOrStdout(), d)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// dashboardJSON builds the JSON form of the dashboard.
func dashboardJSON(d *domain.Dashboard) map[string]interface{} {
	metrics := make([]map[string]interface{}, 0, len(d.Metrics))
	for _, m := range d.Metrics {
		metrics = append(metrics, map[string]interface{}{
			"id":       string(m.ID),
			"label":    m.Label,
			"progress": round1(m.Progress),
			"status":   m.Status,
			"route":    m.Target.String(),
		})
	}
	return map[string]interface{}{
		"name":             d.Name,
		"quit_instant":     d.QuitInstant.Format(timestampLayout),
		"days_smoke_free":  d.Days,
		"overall_recovery": d.Overall,
		"metrics":          metrics,
		"next_milestone":   milestoneJSON(d.Next),
		"savings":          savingsJSON(d.Savings),
	}
}

func milestoneJSON(m domain.Milestone) map[string]interface{} {
	return map[string]interface{}{
		"threshold_days": m.ThresholdDays,
		"description":    m.Description,
		"countdown":      m.Countdown,
	}
}

func savingsJSON(s domain.Savings) map[string]interface{} {
	return map[string]interface{}{
		"currency": s.Currency,
		"daily":    math.Round(s.Daily*100) / 100,
		"total":    s.Total,
		"monthly":  s.Monthly,
		"yearly":   s.Yearly,
	}
}

// printStatusText prints the status in plain text format
func printStatusText(w io.Writer, d *domain.Dashboard) {
	if d.Name != "" {
		fmt.Fprintf(w, "🚭 Keep going, %s!\n", d.Name)
	}
	fmt.Fprintf(w, "🚭 %s smoke-free (since %s)\n", dayWord(d.Days), d.QuitInstant.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "   Overall recovery: %d%%\n", d.Overall)

	fmt.Fprintln(w, "\n📈 Recovery:")
	for _, m := range d.Metrics {
		fmt.Fprintf(w, "   %-22s %5.1f%%  %s\n", m.Label, m.Progress, m.Status)
	}

	fmt.Fprintf(w, "\n🏆 Next: %s\n", d.Next.Description)
	fmt.Fprintf(w, "   %s\n", d.Next.Countdown)

	fmt.Fprintf(w, "\n💰 Saved: %s%d\n", d.Savings.Currency, d.Savings.Total)
}
