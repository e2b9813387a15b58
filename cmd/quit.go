package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/tui"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Show or set your quit date",
}

var quitSetCmd = &cobra.Command{
	Use:   "set [date]",
	Short: "Set your quit date",
	Long: `Set the instant you quit smoking. Accepts "now", YYYY-MM-DD,
"YYYY-MM-DD HH:MM" or RFC3339. Without an argument a form asks for it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		now := recoveryService.Now()

		var raw string
		if len(args) == 1 {
			raw = args[0]
		} else if err := tui.NewQuitDateForm(&raw, now).Run(); err != nil {
			return err
		}

		at, err := domain.ParseQuitInput(raw, now, time.Local)
		if err != nil {
			return err
		}
		if err := recoveryService.SetQuitDate(ctx, at); err != nil {
			return fmt.Errorf("failed to set quit date: %w", err)
		}
		days, err := recoveryService.Days(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"quit_instant":    domain.FormatQuitInstant(at),
				"days_smoke_free": days,
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Quit date set to %s (%s smoke-free)\n", at.Local().Format("2006-01-02 15:04"), dayWord(days))
		return nil
	},
}

var quitShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your quit date",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileService.Load(cmd.Context())
		if err != nil {
			return err
		}
		now := recoveryService.Now()
		at := p.QuitInstant(now)
		days := p.DaysSmokeFree(now)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"quit_instant":    domain.FormatQuitInstant(at),
				"is_set":          p.HasQuitDate(),
				"days_smoke_free": days,
			})
		}
		if !p.HasQuitDate() {
			fmt.Fprintln(cmd.OutOrStdout(), "No quit date set yet. Run `smokefree quit set` to start counting.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🚭 Quit on %s (%s smoke-free)\n", at.Local().Format("2006-01-02 15:04"), dayWord(days))
		return nil
	},
}

var (
	habitsPerDay   int
	habitsCost     float64
	habitsPerPack  int
	habitsCurrency string
)

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Show or set your smoking habits",
	Long:  `Your old smoking habits drive the money-saved calculation.`,
}

var habitsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show habit settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileService.Load(cmd.Context())
		if err != nil {
			return err
		}
		h := p.Habits
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), habitsJSON(h))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cigarettes per day:   %d\n", h.CigarettesPerDay)
		fmt.Fprintf(cmd.OutOrStdout(), "Cost per pack:        %s%.2f\n", h.Currency, h.CostPerPack)
		fmt.Fprintf(cmd.OutOrStdout(), "Cigarettes per pack:  %d\n", h.CigarettesPerPack)
		return nil
	},
}

var habitsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set habit settings",
	Long:  `Set habits with flags, or run without flags to open a form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := profileService.Load(ctx)
		if err != nil {
			return err
		}

		h := p.Habits
		flags := cmd.Flags()
		if !flags.Changed("per-day") && !flags.Changed("cost") && !flags.Changed("per-pack") && !flags.Changed("currency") {
			fm := tui.NewHabitsFormModel(h)
			if err := tui.NewHabitsForm(fm).Run(); err != nil {
				return err
			}
			if h, err = fm.Habits(); err != nil {
				return err
			}
		} else {
			if flags.Changed("per-day") {
				h.CigarettesPerDay = habitsPerDay
			}
			if flags.Changed("cost") {
				h.CostPerPack = habitsCost
			}
			if flags.Changed("per-pack") {
				h.CigarettesPerPack = habitsPerPack
			}
			if flags.Changed("currency") {
				h.Currency = habitsCurrency
			}
		}

		if err := profileService.SetHabits(ctx, h); err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), habitsJSON(h))
		}
		s := domain.CalculateSavings(h, 1)
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Habits saved. Each smoke-free day saves %s%.2f\n", h.Currency, s.Daily)
		return nil
	},
}

func habitsJSON(h domain.Habits) map[string]interface{} {
	return map[string]interface{}{
		"cigarettes_per_day":  h.CigarettesPerDay,
		"cost_per_pack":       h.CostPerPack,
		"cigarettes_per_pack": h.CigarettesPerPack,
		"currency":            h.Currency,
	}
}

func init() {
	habitsSetCmd.Flags().IntVar(&habitsPerDay, "per-day", 0, "Cigarettes smoked per day")
	habitsSetCmd.Flags().Float64Var(&habitsCost, "cost", 0, "Cost of one pack")
	habitsSetCmd.Flags().IntVar(&habitsPerPack, "per-pack", 0, "Cigarettes per pack")
	habitsSetCmd.Flags().StringVar(&habitsCurrency, "currency", "", "Currency symbol")

	quitCmd.AddCommand(quitSetCmd, quitShowCmd)
	habitsCmd.AddCommand(habitsShowCmd, habitsSetCmd)
	rootCmd.AddCommand(quitCmd)
	rootCmd.AddCommand(habitsCmd)
}
