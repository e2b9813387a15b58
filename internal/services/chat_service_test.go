package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

func TestChatService_Ask(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewChatService(store, &fakeCoach{reply: "  Try a glass of water.  "})

	reply, err := svc.Ask(ctx, "  what helps with cravings?  ")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAssistant, reply.Role)
	assert.Equal(t, "Try a glass of water.", reply.Text)
	assert.False(t, reply.Fallback)

	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.ChatGreeting, history[0].Text)
	assert.Equal(t, "what helps with cravings?", history[1].Text)
	assert.True(t, history[1].IsUser())
	assert.Equal(t, "Try a glass of water.", history[2].Text)
}

func TestChatService_FallbackOnFailure(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	tests := []struct {
		name  string
		coach *fakeCoach
	}{
		{"network error", &fakeCoach{err: errors.New("connection refused")}},
		{"empty reply", &fakeCoach{reply: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewChatService(store, tt.coach)
			reply, err := svc.Ask(ctx, "hello")
			require.NoError(t, err)
			assert.Equal(t, domain.ChatFallbackReply, reply.Text)
			assert.True(t, reply.Fallback)
		})
	}

	svc := NewChatService(store, nil)
	reply, err := svc.Ask(ctx, "anyone there?")
	require.NoError(t, err)
	assert.True(t, reply.Fallback)
}

func TestChatService_EmptyQuestion(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	svc := NewChatService(store, &fakeCoach{reply: "hi"})
	_, err := svc.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuestion)

	history, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, history, 1, "only the greeting")
}

func TestChatService_OneRequestInFlight(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	coach := &fakeCoach{
		reply:   "breathe",
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	svc := NewChatService(store, coach)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Ask(ctx, "first")
		done <- err
	}()

	<-coach.entered
	assert.True(t, svc.Busy())

	_, err := svc.Ask(ctx, "second")
	assert.ErrorIs(t, err, domain.ErrChatBusy)

	close(coach.gate)
	require.NoError(t, <-done)
	assert.False(t, svc.Busy())

	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	texts := make([]string, len(history))
	for i, m := range history {
		texts[i] = m.Text
	}
	assert.Equal(t, []string{domain.ChatGreeting, "first", "breathe"}, texts)
}

func TestChatService_Clear(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewChatService(store, &fakeCoach{reply: "ok"})
	_, err := svc.Ask(ctx, "hi")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx))
	history, err := svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
