package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"gopkg.in/yaml.v3"
)

var (
	exportFormat string
	exportDays   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your data",
	Long: `Export your profile, dashboard, cravings, biometric readings and chat
history as JSON or YAML, or the craving log as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, yaml or csv")
	exportCmd.Flags().IntVar(&exportDays, "days", 365, "How many days of cravings to include")
}

// exportData is the full export document.
type exportData struct {
	ExportedAt string                   `json:"exported_at" yaml:"exported_at"`
	Profile    map[string]interface{}   `json:"profile" yaml:"profile"`
	Dashboard  map[string]interface{}   `json:"dashboard" yaml:"dashboard"`
	Cravings   []map[string]interface{} `json:"cravings" yaml:"cravings"`
	Biometrics []map[string]interface{} `json:"biometrics" yaml:"biometrics"`
	Chat       []map[string]interface{} `json:"chat" yaml:"chat"`
}

func runExport(ctx context.Context, w io.Writer) error {
	switch exportFormat {
	case "json", "yaml", "csv":
	default:
		return fmt.Errorf("unknown format %q: use json, yaml or csv", exportFormat)
	}

	cravings, err := cravingService.Recent(ctx, exportDays)
	if err != nil {
		return fmt.Errorf("failed to fetch cravings: %w", err)
	}
	if exportFormat == "csv" {
		return exportCSV(w, cravings)
	}

	data, err := collectExport(ctx, cravings)
	if err != nil {
		return err
	}

	if exportFormat == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func collectExport(ctx context.Context, cravings []*domain.Craving) (*exportData, error) {
	p, err := profileService.Load(ctx)
	if err != nil {
		return nil, err
	}
	d, err := recoveryService.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	readings, err := biometricService.Recent(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch biometrics: %w", err)
	}
	history, err := chatService.History(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat: %w", err)
	}

	profile := habitsJSON(p.Habits)
	profile["name"] = p.Name
	profile["email"] = p.Email
	profile["quit_date"] = p.QuitDate

	data := &exportData{
		ExportedAt: recoveryService.Now().Format(timestampLayout),
		Profile:    profile,
		Dashboard:  dashboardJSON(d),
		Cravings:   make([]map[string]interface{}, 0, len(cravings)),
		Biometrics: make([]map[string]interface{}, 0, len(readings)),
		Chat:       make([]map[string]interface{}, 0, len(history)),
	}
	for _, c := range cravings {
		data.Cravings = append(data.Cravings, cravingJSON(c))
	}
	for _, r := range readings {
		data.Biometrics = append(data.Biometrics, biometricJSON(r))
	}
	for _, m := range history {
		data.Chat = append(data.Chat, chatJSON(m))
	}
	return data, nil
}

func exportCSV(w io.Writer, cravings []*domain.Craving) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "logged_at", "type", "intensity", "trigger", "overcome", "note"})

	for _, c := range cravings {
		_ = cw.Write([]string{
			c.ID,
			c.LoggedAt.Format(timestampLayout),
			string(c.Type),
			strconv.Itoa(c.Intensity),
			c.Trigger,
			strconv.FormatBool(c.Overcome),
			c.Note,
		})
	}

	cw.Flush()
	return cw.Error()
}
