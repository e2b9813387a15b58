package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/metrics"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// CravingService handles craving log use cases.
type CravingService struct {
	storage ports.Storage
	now     func() time.Time
}

// NewCravingService creates a new craving service.
func NewCravingService(storage ports.Storage) *CravingService {
	return &CravingService{storage: storage, now: time.Now}
}

// SetClock replaces the time source.
func (s *CravingService) SetClock(now func() time.Time) {
	s.now = now
}

// LogCravingRequest contains data to log a craving.
type LogCravingRequest struct {
	Type      domain.CravingType
	Intensity int
	Trigger   string
	Note      string
	Overcome  bool
}

// Log records a craving at the current instant.
func (s *CravingService) Log(ctx context.Context, req LogCravingRequest) (*domain.Craving, error) {
	c, err := domain.NewCraving(req.Type, req.Intensity, req.Trigger, s.now())
	if err != nil {
		return nil, err
	}
	c.Note = req.Note
	if req.Overcome {
		c.MarkOvercome()
	}

	if err := s.storage.Cravings().Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save craving: %w", err)
	}

	metrics.IncrementCravingLogged(string(c.Type), c.Overcome)
	logger.Debug("craving logged", "type", c.Type, "intensity", c.Intensity, "overcome", c.Overcome)
	return c, nil
}

// MarkOvercome flags a logged craving as resisted.
func (s *CravingService) MarkOvercome(ctx context.Context, id string) (*domain.Craving, error) {
	c, err := s.storage.Cravings().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.MarkOvercome()
	if err := s.storage.Cravings().Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update craving: %w", err)
	}
	return c, nil
}

// Recent returns the cravings of the last n local days, newest first.
func (s *CravingService) Recent(ctx context.Context, days int) ([]*domain.Craving, error) {
	if days < 1 {
		days = 1
	}
	since := startOfDay(s.now()).AddDate(0, 0, -(days - 1))
	return s.storage.Cravings().FindSince(ctx, since)
}

// Today returns today's cravings and their summary.
func (s *CravingService) Today(ctx context.Context) ([]*domain.Craving, domain.CravingSummary, error) {
	return s.onDay(ctx, s.now())
}

// Yesterday returns yesterday's cravings and their summary.
func (s *CravingService) Yesterday(ctx context.Context) ([]*domain.Craving, domain.CravingSummary, error) {
	return s.onDay(ctx, s.now().AddDate(0, 0, -1))
}

func (s *CravingService) onDay(ctx context.Context, day time.Time) ([]*domain.Craving, domain.CravingSummary, error) {
	all, err := s.storage.Cravings().FindSince(ctx, startOfDay(day))
	if err != nil {
		return nil, domain.CravingSummary{}, err
	}
	return domain.FilterByDate(all, day), domain.Summarize(all, day), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
