package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/adapters/tui"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

var (
	bioSystolic  string
	bioDiastolic string
	bioPulse     string
	bioSpO2      string
	bioLimit     int
)

var biometricsCmd = &cobra.Command{
	Use:     "biometrics",
	Aliases: []string{"bio"},
	Short:   "Record and review blood pressure, pulse and SpO2",
}

var biometricsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a biometric reading",
	Long:  `Add a reading with flags, or run without flags to open a form.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("systolic") && !flags.Changed("diastolic") && !flags.Changed("pulse") && !flags.Changed("spo2") {
			return runBiometricsForm(cmd)
		}
		return addBiometrics(cmd, domain.BiometricInput{
			Systolic:  bioSystolic,
			Diastolic: bioDiastolic,
			Pulse:     bioPulse,
			SpO2:      bioSpO2,
		})
	},
}

var biometricsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		readings, err := biometricService.Recent(cmd.Context(), bioLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			out := make([]map[string]interface{}, 0, len(readings))
			for _, r := range readings {
				out = append(out, biometricJSON(r))
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		if len(readings) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No readings yet. Add one with `smokefree biometrics add`.")
			return nil
		}
		for _, r := range readings {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  BP %-7s  pulse %3d  SpO2 %3d%%\n",
				r.RecordedAt.Local().Format("2006-01-02 15:04"), r.BloodPressure(), r.Pulse, r.SpO2)
		}
		return nil
	},
}

// runBiometricsForm collects a reading interactively. It is also reached
// from the dashboard's biometrics key.
func runBiometricsForm(cmd *cobra.Command) error {
	var in domain.BiometricInput
	if err := tui.NewBiometricsForm(&in).Run(); err != nil {
		return err
	}
	return addBiometrics(cmd, in)
}

func addBiometrics(cmd *cobra.Command, in domain.BiometricInput) error {
	r, err := biometricService.Add(cmd.Context(), in)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), biometricJSON(r))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved: BP %s, pulse %d, SpO2 %d%%\n", r.BloodPressure(), r.Pulse, r.SpO2)
	return nil
}

func biometricJSON(r *domain.BiometricReading) map[string]interface{} {
	return map[string]interface{}{
		"id":          r.ID,
		"systolic":    r.Systolic,
		"diastolic":   r.Diastolic,
		"pulse":       r.Pulse,
		"spo2":        r.SpO2,
		"recorded_at": r.RecordedAt.Format(timestampLayout),
	}
}

func init() {
	biometricsAddCmd.Flags().StringVar(&bioSystolic, "systolic", "", "Systolic pressure (mmHg)")
	biometricsAddCmd.Flags().StringVar(&bioDiastolic, "diastolic", "", "Diastolic pressure (mmHg)")
	biometricsAddCmd.Flags().StringVar(&bioPulse, "pulse", "", "Pulse (bpm)")
	biometricsAddCmd.Flags().StringVar(&bioSpO2, "spo2", "", "Blood oxygen saturation (%)")
	biometricsListCmd.Flags().IntVar(&bioLimit, "limit", 10, "How many readings to show (0 for all)")

	biometricsCmd.AddCommand(biometricsAddCmd, biometricsListCmd)
	rootCmd.AddCommand(biometricsCmd)
}
