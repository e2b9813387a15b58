package tui

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

const (
	chartHeight = 11
	axisWidth   = 5
)

// TerminalWidth returns the current terminal width, defaulting to 80.
func TerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

type series struct {
	mark  rune
	id    domain.MetricID
	value func(domain.DayPoint) float64
}

var chartSeries = []series{
	{'*', domain.MetricLung, func(p domain.DayPoint) float64 { return p.Lung }},
	{'+', domain.MetricHeart, func(p domain.DayPoint) float64 { return p.Heart }},
	{'o', domain.MetricEnergy, func(p domain.DayPoint) float64 { return p.Energy }},
}

// chartRow maps a percentage to a grid row, row 0 being 100%.
func chartRow(v float64) int {
	v = math.Max(0, math.Min(100, v))
	return int(math.Round((100 - v) / 100 * float64(chartHeight-1)))
}

// RenderChart draws the trend as an ASCII line chart fitted to width.
// Later series overwrite earlier ones where they share a cell.
func RenderChart(points []domain.DayPoint, width int, theme *config.ThemeConfig) string {
	t := resolveTheme(theme)
	if len(points) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.ColorMuted)).Render("No data yet")
	}

	step := (width - axisWidth - 2) / len(points)
	if step < 1 {
		step = 1
	}
	if step > 3 {
		step = 3
	}
	cols := len(points) * step

	grid := make([][]rune, chartHeight)
	owner := make([][]domain.MetricID, chartHeight)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		owner[r] = make([]domain.MetricID, cols)
	}
	for _, s := range chartSeries {
		for i, p := range points {
			r, c := chartRow(s.value(p)), i*step
			grid[r][c] = s.mark
			owner[r][c] = s.id
		}
	}

	var b strings.Builder
	for r := 0; r < chartHeight; r++ {
		label := ""
		if r%5 == 0 {
			label = fmt.Sprintf("%d", 100-r*10)
		}
		fmt.Fprintf(&b, "%*s ┤", axisWidth-2, label)
		for c, ch := range grid[r] {
			if ch == ' ' {
				b.WriteRune(ch)
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(metricColor(t, owner[r][c])).Render(string(ch)))
		}
		b.WriteString("\n")
	}
	footer := axisFooter(points, step)
	fmt.Fprintf(&b, "%*s └%s\n", axisWidth-2, "", strings.Repeat("─", max(cols, len(footer))))
	fmt.Fprintf(&b, "%*s  %s\n", axisWidth-2, "", footer)

	legend := make([]string, 0, len(chartSeries))
	for _, s := range chartSeries {
		mark := lipgloss.NewStyle().Foreground(metricColor(t, s.id)).Render(string(s.mark))
		legend = append(legend, fmt.Sprintf("%s %s", mark, s.id.Label()))
	}
	b.WriteString(strings.Repeat(" ", axisWidth) + strings.Join(legend, "   "))
	return b.String()
}

// axisFooter labels the first and last day, the last one ending under the
// last plotted column when there is room.
func axisFooter(points []domain.DayPoint, step int) string {
	first := fmt.Sprintf("day %d", points[0].Day)
	if len(points) == 1 {
		return first
	}
	last := fmt.Sprintf("day %d", points[len(points)-1].Day)
	span := (len(points)-1)*step + 1
	gap := max(1, span-len(first)-len(last))
	return first + strings.Repeat(" ", gap) + last
}
