package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) frame(sections []string) string {
	if m.notice != "" {
		sections = append(sections, "", m.styles.notice.Render(m.notice))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewDashboard() string {
	d := m.dashboard
	var sections []string

	title := fmt.Sprintf("%s Smoke-free", m.theme.IconApp)
	if d.Name != "" {
		title = fmt.Sprintf("%s Keep going, %s", m.theme.IconApp, d.Name)
	}
	sections = append(sections, m.styles.title.Render(title))

	sections = append(sections, renderBigNumber(d.Days, lipgloss.Color(m.theme.ColorTitle), m.width))
	sections = append(sections, m.styles.muted.Render(fmt.Sprintf("%s smoke-free  ·  overall recovery %d%%", dayWord(d.Days), d.Overall)))
	sections = append(sections, "")

	for i, metric := range d.Metrics {
		cursor := "  "
		label := lipgloss.NewStyle().Foreground(metricColor(m.theme, metric.ID)).Render(metric.Label)
		if i == m.selected {
			cursor = m.styles.selected.Render("▸ ")
			label = lipgloss.NewStyle().Bold(true).Foreground(metricColor(m.theme, metric.ID)).Render(metric.Label)
		}
		bar := m.bars[metric.ID]
		sections = append(sections, fmt.Sprintf("%s%s  %s", cursor, label, m.styles.muted.Render(metric.Status)))
		sections = append(sections, "  "+bar.ViewAs(metric.Progress/100))
	}

	sections = append(sections, "")
	sections = append(sections, m.styles.milestone.Render(fmt.Sprintf("%s %s", m.theme.IconMilestone, d.Next.Description)))
	sections = append(sections, m.styles.muted.Render("   "+d.Next.Countdown))

	sections = append(sections, "")
	sections = append(sections, fmt.Sprintf("%s %s%d saved", m.theme.IconSavings, d.Savings.Currency, d.Savings.Total))

	sections = append(sections, "")
	sections = append(sections, m.styles.muted.Render("↑/↓ select  enter open  [g]raph  [p]redict  [s]avings  [b]iometrics  [c]hat  [q]uit"))
	return m.frame(sections)
}

func (m Model) viewMetricDetail() string {
	id := m.selectedMetric()
	metric, ok := m.dashboard.Metric(id)
	if !ok {
		return m.frame([]string{m.styles.muted.Render("Unknown metric")})
	}

	accent := lipgloss.NewStyle().Bold(true).Foreground(metricColor(m.theme, id))
	bar := m.bars[id]

	sections := []string{
		accent.Render(metric.Label),
		m.styles.muted.Render(m.route.String()),
		"",
		bar.ViewAs(metric.Progress / 100),
		fmt.Sprintf("%.1f%% recovered", metric.Progress),
		"",
		"Status: " + metric.Status,
		m.styles.muted.Render(fmt.Sprintf("After %s smoke-free", dayWord(m.dashboard.Days))),
		"",
		m.styles.muted.Render("esc back  q quit"),
	}
	return m.frame(sections)
}

func (m Model) viewTrend() string {
	width := m.width - 4
	sections := []string{
		m.styles.title.Render("Recovery trend"),
		RenderChart(m.trend, width, &m.theme),
		"",
		m.styles.muted.Render("Illustrative values, not measurements."),
		m.styles.muted.Render("esc back  q quit"),
	}
	return m.frame(sections)
}

func (m Model) viewPredictions() string {
	sections := []string{m.styles.title.Render("Health predictions")}
	for _, p := range m.predictions {
		accent := lipgloss.NewStyle().Foreground(metricColor(m.theme, p.Metric))
		sections = append(sections,
			accent.Render(p.Label),
			fmt.Sprintf("  now %.0f%%  →  %.0f%% in %s", p.Current, p.Predicted, p.Timeframe),
		)
	}
	sections = append(sections, "", m.styles.muted.Render("esc back  q quit"))
	return m.frame(sections)
}

func (m Model) viewSavings() string {
	s := m.dashboard.Savings
	sections := []string{
		m.styles.title.Render(fmt.Sprintf("%s Money saved", m.theme.IconSavings)),
		fmt.Sprintf("Total    %s%d", s.Currency, s.Total),
		fmt.Sprintf("Daily    %s%.2f", s.Currency, s.Daily),
		fmt.Sprintf("Monthly  %s%d", s.Currency, s.Monthly),
		fmt.Sprintf("Yearly   %s%d", s.Currency, s.Yearly),
		"",
	}
	for _, item := range s.Rewards() {
		mark := "○"
		if item.CanAfford {
			mark = "●"
		}
		sections = append(sections, fmt.Sprintf("%s %-15s %s%-6d %3.0f%%", mark, item.Name, s.Currency, item.Cost, item.Progress*100))
	}
	sections = append(sections, "", m.styles.muted.Render("esc back  q quit"))
	return m.frame(sections)
}

func dayWord(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
