package services

import (
	"context"
	"errors"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// StateService implements the ports.StateProvider interface.
type StateService struct {
	recovery *RecoveryService
	cravings *CravingService
	chat     *ChatService
}

// Ensure StateService implements ports.StateProvider.
var _ ports.StateProvider = (*StateService)(nil)

// NewStateService creates a new state service.
func NewStateService(recovery *RecoveryService) *StateService {
	return &StateService{recovery: recovery}
}

// SetCravingService sets the craving service for write operations.
func (s *StateService) SetCravingService(cravings *CravingService) {
	s.cravings = cravings
}

// SetChatService sets the chat service.
func (s *StateService) SetChatService(chat *ChatService) {
	s.chat = chat
}

// Dashboard implements ports.StateProvider.
func (s *StateService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	return s.recovery.Dashboard(ctx)
}

// Trend implements ports.StateProvider.
func (s *StateService) Trend(ctx context.Context) ([]domain.DayPoint, error) {
	return s.recovery.Trend(ctx)
}

// Predictions implements ports.StateProvider.
func (s *StateService) Predictions(ctx context.Context) ([]domain.Prediction, error) {
	return s.recovery.Predictions(ctx)
}

// CravingsToday implements ports.StateProvider.
func (s *StateService) CravingsToday(ctx context.Context) ([]*domain.Craving, domain.CravingSummary, error) {
	if s.cravings == nil {
		return nil, domain.CravingSummary{}, errors.New("craving service not configured")
	}
	return s.cravings.Today(ctx)
}

// LogCraving implements ports.StateProvider.
func (s *StateService) LogCraving(ctx context.Context, t domain.CravingType, intensity int, trigger string, overcome bool) (*domain.Craving, error) {
	if s.cravings == nil {
		return nil, errors.New("craving service not configured")
	}
	return s.cravings.Log(ctx, LogCravingRequest{
		Type:      t,
		Intensity: intensity,
		Trigger:   trigger,
		Overcome:  overcome,
	})
}

// AskCoach implements ports.StateProvider.
func (s *StateService) AskCoach(ctx context.Context, question string) (*domain.ChatMessage, error) {
	if s.chat == nil {
		return nil, errors.New("chat service not configured")
	}
	return s.chat.Ask(ctx, question)
}
