package tui

import (
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles are the lipgloss styles derived from one theme.
type styles struct {
	title     lipgloss.Style
	muted     lipgloss.Style
	milestone lipgloss.Style
	selected  lipgloss.Style
	notice    lipgloss.Style
	card      lipgloss.Style
}

func newStyles(t config.ThemeConfig) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorTitle)).MarginBottom(1),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorMuted)),
		milestone: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorMilestone)),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ColorTitle)),
		notice:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(t.ColorMilestone)),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// metricColor returns the accent color of a recovery metric.
func metricColor(t config.ThemeConfig, id domain.MetricID) lipgloss.Color {
	switch id {
	case domain.MetricLung:
		return lipgloss.Color(t.ColorLung)
	case domain.MetricHeart:
		return lipgloss.Color(t.ColorHeart)
	case domain.MetricEnergy:
		return lipgloss.Color(t.ColorEnergy)
	case domain.MetricTaste:
		return lipgloss.Color(t.ColorTaste)
	default:
		return lipgloss.Color(t.ColorMuted)
	}
}
