package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/smokefree-cli/internal/adapters/storage"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
	"github.com/xvierd/smokefree-cli/internal/services"
)

// openStorage opens (or reopens) the database at path.
func openStorage(t *testing.T, path string) ports.Storage {
	t.Helper()

	store, err := storage.New(path)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	return store
}

type recordingNotifier struct {
	seen []string
}

func (n *recordingNotifier) NotifyMilestone(description string, days int) error {
	n.seen = append(n.seen, description)
	return nil
}

type stack struct {
	store    ports.Storage
	profiles *services.ProfileService
	recovery *services.RecoveryService
	cravings *services.CravingService
	chat     *services.ChatService
	notifier *recordingNotifier
}

func newStack(t *testing.T, path string, now time.Time) *stack {
	t.Helper()
	store := openStorage(t, path)
	clock := func() time.Time { return now }

	s := &stack{store: store, notifier: &recordingNotifier{}}
	s.profiles = services.NewProfileService(store, domain.DefaultHabits())
	s.recovery = services.NewRecoveryService(s.profiles, domain.DefaultRecoveryConfig(), domain.DefaultMilestoneTable())
	s.recovery.SetClock(clock)
	s.recovery.SetNotifier(s.notifier)
	s.cravings = services.NewCravingService(store)
	s.cravings.SetClock(clock)
	s.chat = services.NewChatService(store, nil)
	return s
}

// TestRecoveryAcrossRestarts walks a user through the first weeks, closing
// and reopening the database between "runs".
func TestRecoveryAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "smokefree.db")
	quit := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("day 0: set quit date", func(t *testing.T) {
		s := newStack(t, dbPath, quit.Add(time.Hour))
		defer func() { _ = s.store.Close() }()

		if err := s.recovery.SetQuitDate(ctx, quit); err != nil {
			t.Fatalf("failed to set quit date: %v", err)
		}
		d, err := s.recovery.Dashboard(ctx)
		if err != nil {
			t.Fatalf("failed to build dashboard: %v", err)
		}
		if d.Days != 0 || d.Overall != 0 {
			t.Errorf("day 0 dashboard = %d days, %d%% overall", d.Days, d.Overall)
		}
		if d.Next.Countdown != "In about 20 minutes" {
			t.Errorf("day 0 countdown = %q", d.Next.Countdown)
		}
	})

	t.Run("day 4: milestones announced once", func(t *testing.T) {
		now := quit.Add(4*24*time.Hour + time.Hour)
		s := newStack(t, dbPath, now)
		defer func() { _ = s.store.Close() }()

		announced, err := s.recovery.CelebrateMilestones(ctx)
		if err != nil {
			t.Fatalf("celebrate failed: %v", err)
		}
		if len(announced) != 2 || len(s.notifier.seen) != 2 {
			t.Fatalf("announced %v, want the day-1 and day-3 milestones", announced)
		}

		again, err := s.recovery.CelebrateMilestones(ctx)
		if err != nil {
			t.Fatalf("second celebrate failed: %v", err)
		}
		if len(again) != 0 {
			t.Errorf("second run announced %v, want nothing", again)
		}

		c, err := s.cravings.Log(ctx, services.LogCravingRequest{Type: domain.CravingEmotional, Intensity: 8, Trigger: "stress"})
		if err != nil {
			t.Fatalf("failed to log craving: %v", err)
		}
		if _, err := s.cravings.MarkOvercome(ctx, c.ID); err != nil {
			t.Fatalf("failed to mark overcome: %v", err)
		}
	})

	t.Run("day 4 restart: state persisted", func(t *testing.T) {
		now := quit.Add(4*24*time.Hour + 2*time.Hour)
		s := newStack(t, dbPath, now)
		defer func() { _ = s.store.Close() }()

		announced, err := s.recovery.CelebrateMilestones(ctx)
		if err != nil {
			t.Fatalf("celebrate failed: %v", err)
		}
		if len(announced) != 0 {
			t.Errorf("restart replayed milestones %v", announced)
		}

		_, sum, err := s.cravings.Today(ctx)
		if err != nil {
			t.Fatalf("failed to read today: %v", err)
		}
		if sum.Logged != 1 || sum.Overcome != 1 {
			t.Errorf("today = %d logged / %d overcome, want 1/1", sum.Logged, sum.Overcome)
		}

		m, err := s.recovery.NextMilestone(ctx)
		if err != nil {
			t.Fatalf("failed to get milestone: %v", err)
		}
		if m.ThresholdDays != 14 || m.Countdown != "In 10 days" {
			t.Errorf("milestone = %+v, want 14 days / In 10 days", m)
		}
	})

	t.Run("chat log survives restart", func(t *testing.T) {
		s := newStack(t, dbPath, quit.Add(5*24*time.Hour))
		reply, err := s.chat.Ask(ctx, "Is day five the hardest?")
		if err != nil {
			t.Fatalf("ask failed: %v", err)
		}
		if !reply.Fallback {
			t.Error("a missing coach should yield the fallback reply")
		}
		_ = s.store.Close()

		s = newStack(t, dbPath, quit.Add(5*24*time.Hour))
		defer func() { _ = s.store.Close() }()
		history, err := s.chat.History(ctx, 0)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if len(history) != 3 {
			t.Fatalf("history = %d messages, want greeting, question and reply", len(history))
		}
		if history[0].Text != domain.ChatGreeting || history[1].Text != "Is day five the hardest?" {
			t.Errorf("history order wrong: %q, %q", history[0].Text, history[1].Text)
		}
	})

	t.Run("reset wipes everything", func(t *testing.T) {
		s := newStack(t, dbPath, quit.Add(6*24*time.Hour))
		defer func() { _ = s.store.Close() }()

		if err := s.store.Reset(ctx); err != nil {
			t.Fatalf("reset failed: %v", err)
		}
		p, err := s.profiles.Load(ctx)
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if p.HasQuitDate() {
			t.Error("quit date survived reset")
		}
		if _, err := s.store.Preferences().Get(ctx, ports.PrefLastCelebrated); !errors.Is(err, domain.ErrPreferenceMissing) {
			t.Errorf("last celebrated survived reset: %v", err)
		}
	})
}

// TestBackdatedQuitDateDoesNotReplay checks that entering an old quit date
// does not fire every milestone at once.
func TestBackdatedQuitDateDoesNotReplay(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "smokefree.db")
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	s := newStack(t, dbPath, now)
	defer func() { _ = s.store.Close() }()

	if err := s.recovery.SetQuitDate(ctx, now.AddDate(0, 0, -100)); err != nil {
		t.Fatalf("failed to set quit date: %v", err)
	}
	announced, err := s.recovery.CelebrateMilestones(ctx)
	if err != nil {
		t.Fatalf("celebrate failed: %v", err)
	}
	if len(announced) != 0 {
		t.Errorf("backdated quit date announced %v", announced)
	}

	d, err := s.recovery.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if d.Days != 100 || d.Next.ThresholdDays != 365 {
		t.Errorf("dashboard = %d days, next %d", d.Days, d.Next.ThresholdDays)
	}
}
