package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/tui"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/services"
)

var (
	cravingType      string
	cravingIntensity int
	cravingTrigger   string
	cravingNote      string
	cravingOvercome  bool
	cravingDays      int
	cravingYesterday bool
)

var cravingCmd = &cobra.Command{
	Use:     "craving",
	Aliases: []string{"cravings"},
	Short:   "Log and review cravings",
}

var cravingLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a craving",
	Long: `Log a craving with its type and intensity (1-10).
Types: physical, habitual, social, emotional, situational, other.
Without --type a form asks for the details.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := services.LogCravingRequest{
			Trigger:  cravingTrigger,
			Note:     cravingNote,
			Overcome: cravingOvercome,
		}

		if cravingType == "" {
			fm := &tui.CravingFormModel{Type: domain.CravingPhysical, Intensity: "5"}
			if err := tui.NewCravingForm(fm).Run(); err != nil {
				return err
			}
			n, err := strconv.Atoi(fm.Intensity)
			if err != nil {
				return fmt.Errorf("%w: intensity must be a whole number", domain.ErrInvalidCraving)
			}
			req.Type, req.Intensity, req.Trigger, req.Overcome = fm.Type, n, fm.Trigger, fm.Overcome
		} else {
			t, err := domain.ValidateCravingType(cravingType)
			if err != nil {
				return err
			}
			req.Type, req.Intensity = t, cravingIntensity
		}

		c, err := cravingService.Log(cmd.Context(), req)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), cravingJSON(c))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Logged %s craving (intensity %d)\n", c.Type.Label(), c.Intensity)
		fmt.Fprintf(cmd.OutOrStdout(), "   ID: %s\n", c.ID)
		if c.Overcome {
			fmt.Fprintln(cmd.OutOrStdout(), "   💪 Beaten. Well done!")
		}
		return nil
	},
}

var cravingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent cravings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cravings, err := cravingService.Recent(cmd.Context(), cravingDays)
		if err != nil {
			return fmt.Errorf("failed to list cravings: %w", err)
		}

		if jsonOutput {
			out := make([]map[string]interface{}, 0, len(cravings))
			for _, c := range cravings {
				out = append(out, cravingJSON(c))
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		if len(cravings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No cravings logged.")
			return nil
		}
		printCravings(cmd.OutOrStdout(), cravings)
		return nil
	},
}

var cravingTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's craving progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		label := "Today"
		get := cravingService.Today
		if cravingYesterday {
			label = "Yesterday"
			get = cravingService.Yesterday
		}
		cravings, sum, err := get(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), summaryJSON(sum))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d logged, %d overcome (%.0f%%)\n", label, sum.Logged, sum.Overcome, sum.Rate()*100)
		if len(cravings) > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
			printCravings(cmd.OutOrStdout(), cravings)
		}
		return nil
	},
}

var cravingOvercomeCmd = &cobra.Command{
	Use:   "overcome <id>",
	Short: "Mark a logged craving as beaten",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cravingService.MarkOvercome(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), cravingJSON(c))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "💪 Craving %s marked as overcome\n", c.ID)
		return nil
	},
}

func cravingJSON(c *domain.Craving) map[string]interface{} {
	return map[string]interface{}{
		"id":        c.ID,
		"type":      string(c.Type),
		"intensity": c.Intensity,
		"trigger":   c.Trigger,
		"note":      c.Note,
		"overcome":  c.Overcome,
		"logged_at": c.LoggedAt.Format(timestampLayout),
	}
}

func summaryJSON(s domain.CravingSummary) map[string]interface{} {
	return map[string]interface{}{
		"date":     s.Date.Format("2006-01-02"),
		"logged":   s.Logged,
		"overcome": s.Overcome,
		"rate":     round1(s.Rate() * 100),
	}
}

func printCravings(w io.Writer, cravings []*domain.Craving) {
	for _, c := range cravings {
		mark := "○"
		if c.Overcome {
			mark = "●"
		}
		line := fmt.Sprintf("%s %s  %-11s %2d/10", mark, c.LoggedAt.Local().Format("2006-01-02 15:04"), c.Type.Label(), c.Intensity)
		if c.Trigger != "" {
			line += "  #" + c.Trigger
		}
		fmt.Fprintln(w, line)
	}
}

func init() {
	cravingLogCmd.Flags().StringVarP(&cravingType, "type", "t", "", "Craving type")
	cravingLogCmd.Flags().IntVarP(&cravingIntensity, "intensity", "i", 5, "Intensity from 1 to 10")
	cravingLogCmd.Flags().StringVar(&cravingTrigger, "trigger", "", "What triggered it (coffee, alcohol, social, stress, driving, breaks)")
	cravingLogCmd.Flags().StringVar(&cravingNote, "note", "", "Free-form note")
	cravingLogCmd.Flags().BoolVar(&cravingOvercome, "overcome", false, "You did not smoke")
	cravingListCmd.Flags().IntVar(&cravingDays, "days", 7, "How many days back to list")
	cravingTodayCmd.Flags().BoolVar(&cravingYesterday, "yesterday", false, "Show yesterday instead")

	cravingCmd.AddCommand(cravingLogCmd, cravingListCmd, cravingTodayCmd, cravingOvercomeCmd)
	rootCmd.AddCommand(cravingCmd)
}
