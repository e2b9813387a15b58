package notification

import (
	"errors"
	"strings"
	"testing"

	"github.com/xvierd/smokefree-cli/internal/config"
)

type recorder struct {
	titles   []string
	messages []string
	beeps    int
	err      error
}

func newTestNotifier(cfg *config.NotificationConfig, r *recorder) *Notifier {
	n := New(cfg)
	n.notify = func(title, message string) error {
		r.titles = append(r.titles, title)
		r.messages = append(r.messages, message)
		return r.err
	}
	n.beep = func(float64, int) error {
		r.beeps++
		return nil
	}
	return n
}

func TestNotifyMilestone(t *testing.T) {
	r := &recorder{}
	n := newTestNotifier(&config.NotificationConfig{Enabled: true, Sound: true}, r)

	if err := n.NotifyMilestone("72 hours: Breathing easier", 3); err != nil {
		t.Fatalf("NotifyMilestone() error = %v", err)
	}
	if len(r.messages) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(r.messages))
	}
	if !strings.Contains(r.messages[0], "72 hours: Breathing easier") || !strings.Contains(r.messages[0], "3 days") {
		t.Errorf("unexpected message %q", r.messages[0])
	}
	if r.beeps != 1 {
		t.Errorf("expected 1 beep, got %d", r.beeps)
	}
}

func TestNotify_Disabled(t *testing.T) {
	r := &recorder{}
	n := newTestNotifier(&config.NotificationConfig{Enabled: false}, r)

	if err := n.NotifyMilestone("2 weeks: Circulation improves", 14); err != nil {
		t.Fatalf("NotifyMilestone() error = %v", err)
	}
	if len(r.messages) != 0 {
		t.Errorf("disabled notifier sent %d notifications", len(r.messages))
	}

	if New(nil).IsEnabled() {
		t.Error("nil config should be disabled")
	}
}

func TestNotify_ErrorSkipsBeep(t *testing.T) {
	r := &recorder{err: errors.New("no dbus")}
	n := newTestNotifier(&config.NotificationConfig{Enabled: true, Sound: true}, r)

	if err := n.NotifyMilestone("x", 1); err == nil {
		t.Error("expected error to propagate")
	}
	if r.beeps != 0 {
		t.Errorf("expected no beep after failure, got %d", r.beeps)
	}
}
