package cmd

import (
	"fmt"
	"io"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/tui"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

var graphWidth int

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show the recovery trend chart",
	Long: `Draw lung, heart and energy recovery for up to the last 30 days.
The values are illustrative, not measurements.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		points, err := recoveryService.Trend(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to build trend: %w", err)
		}

		if jsonOutput {
			out := make([]map[string]interface{}, 0, len(points))
			for _, p := range points {
				out = append(out, map[string]interface{}{
					"day":    p.Day,
					"lung":   round1(p.Lung),
					"heart":  round1(p.Heart),
					"energy": round1(p.Energy),
				})
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		width := graphWidth
		if width <= 0 {
			width = tui.TerminalWidth()
		}
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderChart(points, width, &appConfig.Theme))
		return nil
	},
}

var milestoneCmd = &cobra.Command{
	Use:   "milestone",
	Short: "Show the next health milestone",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := recoveryService.NextMilestone(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get milestone: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), milestoneJSON(m))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🏆 %s\n   %s\n", m.Description, m.Countdown)
		return nil
	},
}

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "Show money saved since quitting",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := recoveryService.Savings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get savings: %w", err)
		}

		if jsonOutput {
			out := savingsJSON(s)
			rewards := make([]map[string]interface{}, 0)
			for _, r := range s.Rewards() {
				rewards = append(rewards, map[string]interface{}{
					"name":       r.Name,
					"cost":       r.Cost,
					"can_afford": r.CanAfford,
					"progress":   round1(r.Progress * 100),
				})
			}
			out["rewards"] = rewards
			return printJSON(cmd.OutOrStdout(), out)
		}

		printSavingsText(cmd.OutOrStdout(), s)
		return nil
	},
}

func printSavingsText(w io.Writer, s domain.Savings) {
	fmt.Fprintln(w, "💰 Money saved")
	fmt.Fprintf(w, "   Total:    %s%d\n", s.Currency, s.Total)
	fmt.Fprintf(w, "   Daily:    %s%.2f\n", s.Currency, s.Daily)
	fmt.Fprintf(w, "   Monthly:  %s%d\n", s.Currency, s.Monthly)
	fmt.Fprintf(w, "   Yearly:   %s%d\n", s.Currency, s.Yearly)
	fmt.Fprintln(w, "\n🎁 Rewards:")
	for _, r := range s.Rewards() {
		mark := "○"
		if r.CanAfford {
			mark = "●"
		}
		fmt.Fprintf(w, "   %s %-15s %s%-6d %3.0f%%\n", mark, r.Name, s.Currency, r.Cost, r.Progress*100)
	}
}

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Show projected health values",
	RunE: func(cmd *cobra.Command, args []string) error {
		preds, err := recoveryService.Predictions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get predictions: %w", err)
		}

		if jsonOutput {
			out := make([]map[string]interface{}, 0, len(preds))
			for _, p := range preds {
				out = append(out, map[string]interface{}{
					"metric":    string(p.Metric),
					"label":     p.Label,
					"current":   round1(p.Current),
					"predicted": round1(p.Predicted),
					"timeframe": p.Timeframe,
				})
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "🔮 Health predictions")
		for _, p := range preds {
			fmt.Fprintf(cmd.OutOrStdout(), "   %-15s now %3.0f%%  →  %3.0f%% in %s\n", p.Label, p.Current, p.Predicted, p.Timeframe)
		}
		return nil
	},
}

var metricCmd = &cobra.Command{
	Use:   "metric <name>",
	Short: "Show one recovery metric",
	Long:  `Look up a recovery metric by id or a fuzzy name such as "lung", "heart" or "smell".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := findMetric(args[0])
		if err != nil {
			return err
		}
		m, err := recoveryService.Metric(cmd.Context(), id)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"id":       string(m.ID),
				"label":    m.Label,
				"progress": round1(m.Progress),
				"status":   m.Status,
				"route":    m.Target.String(),
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", m.Label, m.Target)
		fmt.Fprintf(cmd.OutOrStdout(), "   %.1f%% recovered\n", m.Progress)
		fmt.Fprintf(cmd.OutOrStdout(), "   Status: %s\n", m.Status)
		return nil
	},
}

// findMetric resolves an exact id first, then the best fuzzy match over
// ids and labels.
func findMetric(query string) (domain.MetricID, error) {
	if id, err := domain.ParseMetricID(query); err == nil {
		return id, nil
	}

	haystack := make([]string, len(domain.AllMetrics))
	for i, id := range domain.AllMetrics {
		haystack[i] = string(id) + " " + id.Label()
	}
	matches := fuzzy.Find(query, haystack)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q (try lung, heart, energy or taste)", domain.ErrUnknownMetric, query)
	}
	return domain.AllMetrics[matches[0].Index], nil
}

func init() {
	graphCmd.Flags().IntVar(&graphWidth, "width", 0, "Chart width in columns (default: terminal width)")

	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(milestoneCmd)
	rootCmd.AddCommand(savingsCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(metricCmd)
}
