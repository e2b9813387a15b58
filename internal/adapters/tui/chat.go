package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/smokefree-cli/internal/config"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

// chatReplyMsg carries the coach's answer back to the chat model.
type chatReplyMsg struct {
	reply *domain.ChatMessage
	err   error
}

// ChatModel is the coach conversation screen.
type ChatModel struct {
	history  []*domain.ChatMessage
	ask      func(question string) (*domain.ChatMessage, error)
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	waiting  bool
	notice   string
	ready    bool
	theme    config.ThemeConfig
	styles   styles
}

// NewChatModel creates the chat screen from the stored history.
func NewChatModel(history []*domain.ChatMessage, ask func(string) (*domain.ChatMessage, error), theme *config.ThemeConfig) ChatModel {
	resolved := resolveTheme(theme)

	ti := textinput.New()
	ti.Placeholder = "Ask about cravings, withdrawal, motivation..."
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(resolved.ColorTitle))

	return ChatModel{
		history: history,
		ask:     ask,
		input:   ti,
		spinner: sp,
		theme:   resolved,
		styles:  newStyles(resolved),
	}
}

// Init initializes the chat screen.
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func askCmd(ask func(string) (*domain.ChatMessage, error), question string) tea.Cmd {
	return func() tea.Msg {
		reply, err := ask(question)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// Update handles messages and updates the model.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}

	case tea.WindowSizeMsg:
		height := max(3, msg.Height-5)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = max(10, msg.Width-4)
		m.refresh()

	case chatReplyMsg:
		m.waiting = false
		switch {
		case errors.Is(msg.err, domain.ErrChatBusy):
			m.notice = "Still waiting for the previous answer."
		case msg.err != nil:
			m.notice = msg.err.Error()
		case msg.reply != nil:
			m.history = append(m.history, msg.reply)
			m.notice = ""
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m ChatModel) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		return m, nil
	}
	if m.waiting {
		m.notice = "Still waiting for the previous answer."
		return m, nil
	}

	m.history = append(m.history, domain.NewChatMessage(domain.RoleUser, question, timeNow()))
	m.input.Reset()
	m.waiting = true
	m.notice = ""
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, askCmd(m.ask, question))
}

func (m *ChatModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderHistory(m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m ChatModel) renderHistory(width int) string {
	userStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorLung))
	coachStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))
	body := lipgloss.NewStyle().Width(max(10, width-2)).PaddingLeft(2)

	var b strings.Builder
	for _, msg := range m.history {
		if msg.IsUser() {
			b.WriteString(userStyle.Render("You"))
		} else {
			b.WriteString(coachStyle.Render("Coach"))
		}
		b.WriteString("\n")
		text := body.Render(msg.Text)
		if msg.Fallback {
			text = m.styles.muted.Render(text)
		}
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// View renders the chat screen.
func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	status := m.styles.muted.Render("enter send  esc quit")
	if m.waiting {
		status = m.spinner.View() + " " + m.styles.muted.Render("Coach is typing...")
	}
	if m.notice != "" {
		status = m.styles.notice.Render(m.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		"",
		m.input.View(),
		status,
	)
}
