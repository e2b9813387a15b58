package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

func greeting() []*domain.ChatMessage {
	return []*domain.ChatMessage{domain.NewChatMessage(domain.RoleAssistant, domain.ChatGreeting, testNow)}
}

func sizedChat(ask func(string) (*domain.ChatMessage, error)) ChatModel {
	m := NewChatModel(greeting(), ask, nil)
	result, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return result.(ChatModel)
}

func chatUpdate(t *testing.T, m ChatModel, msg tea.Msg) (ChatModel, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	updated, ok := result.(ChatModel)
	if !ok {
		t.Fatalf("Update() returned %T, want ChatModel", result)
	}
	return updated, cmd
}

func TestChatModel_Loading(t *testing.T) {
	m := NewChatModel(greeting(), nil, nil)
	if m.View() != "Loading..." {
		t.Error("View() before the first window size should show loading")
	}
}

func TestChatModel_ShowsGreeting(t *testing.T) {
	m := sizedChat(nil)
	if !strings.Contains(m.View(), "quit-smoking coach") {
		t.Error("View() should show the greeting")
	}
}

func TestChatModel_EmptyQuestionIgnored(t *testing.T) {
	m := sizedChat(nil)
	m.input.SetValue("   ")
	m, cmd := chatUpdate(t, m, key("enter"))
	if cmd != nil || m.waiting {
		t.Error("blank question should not be sent")
	}
}

func TestChatModel_AskFlow(t *testing.T) {
	var asked string
	ask := func(q string) (*domain.ChatMessage, error) {
		asked = q
		return domain.NewChatMessage(domain.RoleAssistant, "Try a glass of water.", testNow), nil
	}
	m := sizedChat(ask)

	m.input.SetValue("What helps with cravings?")
	m, cmd := chatUpdate(t, m, key("enter"))
	if !m.waiting {
		t.Fatal("model should wait for the reply")
	}
	if len(m.history) != 2 || !m.history[1].IsUser() {
		t.Fatalf("history = %d messages, want greeting + question", len(m.history))
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared after sending")
	}
	if cmd == nil {
		t.Fatal("enter should start the request")
	}

	m.input.SetValue("another one")
	m, _ = chatUpdate(t, m, key("enter"))
	if !strings.Contains(m.notice, "Still waiting") {
		t.Errorf("second question while waiting: notice = %q", m.notice)
	}

	reply, err := ask("What helps with cravings?")
	m, _ = chatUpdate(t, m, chatReplyMsg{reply: reply, err: err})
	if m.waiting {
		t.Error("model should stop waiting after the reply")
	}
	if asked != "What helps with cravings?" {
		t.Errorf("asked = %q", asked)
	}
	if !strings.Contains(m.View(), "Try a glass of water.") {
		t.Error("View() should show the reply")
	}
}

func TestChatModel_BusyReply(t *testing.T) {
	m := sizedChat(nil)
	m.waiting = true
	m, _ = chatUpdate(t, m, chatReplyMsg{err: domain.ErrChatBusy})
	if m.waiting {
		t.Error("busy reply should clear waiting")
	}
	if !strings.Contains(m.View(), "Still waiting") {
		t.Error("busy reply should show a notice")
	}
}

func TestChatModel_FallbackRendered(t *testing.T) {
	m := sizedChat(nil)
	fb := domain.NewChatMessage(domain.RoleAssistant, domain.ChatFallbackReply, testNow)
	fb.Fallback = true
	m, _ = chatUpdate(t, m, chatReplyMsg{reply: fb})
	if !strings.Contains(m.View(), domain.ChatFallbackReply) {
		t.Error("fallback reply should be shown")
	}
}

func TestChatModel_EscQuits(t *testing.T) {
	m := sizedChat(nil)
	_, cmd := chatUpdate(t, m, key("esc"))
	if !isQuit(cmd) {
		t.Error("esc should quit the chat")
	}
}
