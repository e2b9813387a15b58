package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/metrics"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// ChatService runs the coach conversation. At most one question is in
// flight at a time and every exchange is appended to the stored log.
type ChatService struct {
	storage ports.Storage
	coach   ports.Coach
	now     func() time.Time

	mu       sync.Mutex
	inFlight bool
}

// NewChatService creates a chat service.
func NewChatService(storage ports.Storage, coach ports.Coach) *ChatService {
	return &ChatService{storage: storage, coach: coach, now: time.Now}
}

// History returns the conversation, oldest first. An empty log starts with
// the greeting.
func (s *ChatService) History(ctx context.Context, limit int) ([]*domain.ChatMessage, error) {
	if err := s.ensureGreeting(ctx); err != nil {
		return nil, err
	}
	return s.storage.Chat().History(ctx, limit)
}

// Busy reports whether a question is awaiting its reply.
func (s *ChatService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Ask sends a question and returns the assistant reply. A failed request
// yields the fallback reply rather than an error. A second call while one
// is outstanding returns domain.ErrChatBusy.
func (s *ChatService) Ask(ctx context.Context, question string) (*domain.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		metrics.IncrementCoachRequest("busy")
		return nil, domain.ErrChatBusy
	}
	s.inFlight = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	if err := s.ensureGreeting(ctx); err != nil {
		return nil, err
	}
	if err := s.storage.Chat().Append(ctx, domain.NewChatMessage(domain.RoleUser, question, s.now())); err != nil {
		return nil, fmt.Errorf("failed to store question: %w", err)
	}

	reply := s.askCoach(ctx, question)
	if err := s.storage.Chat().Append(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to store reply: %w", err)
	}
	return reply, nil
}

// Clear wipes the conversation.
func (s *ChatService) Clear(ctx context.Context) error {
	return s.storage.Chat().Clear(ctx)
}

func (s *ChatService) askCoach(ctx context.Context, question string) *domain.ChatMessage {
	var text string
	var err error
	if s.coach == nil {
		err = fmt.Errorf("no coach configured")
	} else {
		text, err = s.coach.Ask(ctx, question)
	}
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty reply")
	}

	if err != nil {
		logger.Warn("coach request failed", "err", err)
		metrics.IncrementCoachRequest("fallback")
		m := domain.NewChatMessage(domain.RoleAssistant, domain.ChatFallbackReply, s.now())
		m.Fallback = true
		return m
	}

	metrics.IncrementCoachRequest("reply")
	return domain.NewChatMessage(domain.RoleAssistant, strings.TrimSpace(text), s.now())
}

func (s *ChatService) ensureGreeting(ctx context.Context) error {
	msgs, err := s.storage.Chat().History(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to read chat history: %w", err)
	}
	if len(msgs) > 0 {
		return nil
	}
	return s.storage.Chat().Append(ctx, domain.NewChatMessage(domain.RoleAssistant, domain.ChatGreeting, s.now()))
}
