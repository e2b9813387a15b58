// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

// refreshInterval is how often the dashboard recomputes from the clock.
const refreshInterval = time.Minute

var timeNow = time.Now

// tickMsg is sent on every refresh tick.
type tickMsg time.Time

// dashboardMsg wraps a dashboard fetched asynchronously.
type dashboardMsg struct {
	dashboard *domain.Dashboard
	err       error
}

// Sources are the read callbacks the dashboard renders from.
type Sources struct {
	Dashboard   func() (*domain.Dashboard, error)
	Trend       func() ([]domain.DayPoint, error)
	Predictions func() ([]domain.Prediction, error)
}

// Exit tells the caller what the user asked for when the TUI quit.
type Exit int

const (
	ExitNone Exit = iota
	ExitChat
	ExitBiometrics
)

// Model is the dashboard TUI.
type Model struct {
	dashboard *domain.Dashboard
	sources   Sources
	route     domain.Route
	selected  int
	width     int
	height    int
	theme     config.ThemeConfig
	styles    styles
	bars      map[domain.MetricID]progress.Model
	notice    string

	trend       []domain.DayPoint
	predictions []domain.Prediction

	// Next is set when the user leaves the TUI to open another screen.
	Next Exit
}

// NewModel creates a new dashboard model.
func NewModel(initial *domain.Dashboard, sources Sources, theme *config.ThemeConfig) Model {
	resolved := resolveTheme(theme)
	bars := make(map[domain.MetricID]progress.Model, len(domain.AllMetrics))
	for _, id := range domain.AllMetrics {
		c := string(metricColor(resolved, id))
		bars[id] = progress.New(progress.WithSolidFill(c), progress.WithWidth(30))
	}
	return Model{
		dashboard: initial,
		sources:   sources,
		route:     domain.RouteDashboard,
		theme:     resolved,
		styles:    newStyles(resolved),
		bars:      bars,
	}
}

// Route returns the view currently shown.
func (m Model) Route() domain.Route {
	return m.route
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd creates a command that sends a tick message.
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchDashboardCmd returns a tea.Cmd that fetches the dashboard asynchronously.
func fetchDashboardCmd(fetch func() (*domain.Dashboard, error)) tea.Cmd {
	return func() tea.Msg {
		d, err := fetch()
		return dashboardMsg{dashboard: d, err: err}
	}
}

// selectMetricCmd emits the selection event for the highlighted card.
func selectMetricCmd(id domain.MetricID) tea.Cmd {
	return func() tea.Msg {
		return domain.MetricSelected{Metric: id}
	}
}

func (m Model) selectedMetric() domain.MetricID {
	return domain.AllMetrics[m.selected]
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for id, bar := range m.bars {
			bar.Width = max(10, msg.Width/2-10)
			m.bars[id] = bar
		}

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if m.sources.Dashboard != nil {
			cmds = append(cmds, fetchDashboardCmd(m.sources.Dashboard))
		}
		return m, tea.Batch(cmds...)

	case dashboardMsg:
		if msg.err != nil {
			m.notice = "Refresh failed: " + msg.err.Error()
		} else if msg.dashboard != nil {
			m.dashboard = msg.dashboard
		}

	case domain.MetricSelected:
		route, err := msg.Route()
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		for i, id := range domain.AllMetrics {
			if id == msg.Metric {
				m.selected = i
			}
		}
		m.route = route
		m.notice = ""
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.route = domain.RouteDashboard
		m.notice = ""
		return m, nil
	}

	if m.route != domain.RouteDashboard {
		return m, nil
	}

	switch msg.String() {
	case "up", "k", "left", "h":
		m.selected = (m.selected + len(domain.AllMetrics) - 1) % len(domain.AllMetrics)
	case "down", "j", "right", "l", "tab":
		m.selected = (m.selected + 1) % len(domain.AllMetrics)
	case "enter", " ":
		return m, selectMetricCmd(m.selectedMetric())
	case "1", "2", "3", "4":
		m.selected = int(msg.String()[0] - '1')
		return m, selectMetricCmd(m.selectedMetric())
	case "g":
		return m.openTrend(), nil
	case "p":
		return m.openPredictions(), nil
	case "s":
		m.route = domain.RouteSavings
	case "c":
		m.Next = ExitChat
		return m, tea.Quit
	case "b":
		m.Next = ExitBiometrics
		return m, tea.Quit
	case "r":
		if m.sources.Dashboard != nil {
			return m, fetchDashboardCmd(m.sources.Dashboard)
		}
	}
	return m, nil
}

func (m Model) openTrend() Model {
	if m.sources.Trend != nil {
		points, err := m.sources.Trend()
		if err != nil {
			m.notice = "Could not load trend: " + err.Error()
			return m
		}
		m.trend = points
	}
	m.route = domain.RouteRecoveryGraph
	return m
}

func (m Model) openPredictions() Model {
	if m.sources.Predictions != nil {
		preds, err := m.sources.Predictions()
		if err != nil {
			m.notice = "Could not load predictions: " + err.Error()
			return m
		}
		m.predictions = preds
	}
	m.route = domain.RoutePrediction
	return m
}

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.dashboard == nil {
		return m.styles.muted.Render("No data. Press q to quit.")
	}

	switch m.route {
	case domain.RouteLungRecovery, domain.RouteHeartRecovery,
		domain.RouteEnergyImprovement, domain.RouteTasteSmellRecovery:
		return m.viewMetricDetail()
	case domain.RouteRecoveryGraph:
		return m.viewTrend()
	case domain.RoutePrediction:
		return m.viewPredictions()
	case domain.RouteSavings:
		return m.viewSavings()
	default:
		return m.viewDashboard()
	}
}
