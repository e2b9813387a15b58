package services

import (
	"context"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/metrics"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// RecoveryService computes the recovery views from the stored profile.
type RecoveryService struct {
	profiles   *ProfileService
	recovery   domain.RecoveryConfig
	milestones domain.MilestoneTable
	notifier   ports.Notifier
	seeds      domain.SeedSource
	now        func() time.Time
}

// NewRecoveryService creates a recovery service.
func NewRecoveryService(profiles *ProfileService, rc domain.RecoveryConfig, mt domain.MilestoneTable) *RecoveryService {
	if len(mt) == 0 {
		mt = domain.DefaultMilestoneTable()
	}
	return &RecoveryService{
		profiles:   profiles,
		recovery:   rc,
		milestones: mt,
		seeds:      domain.DefaultSeedSource,
		now:        time.Now,
	}
}

// SetNotifier sets the notifier used for milestone celebrations.
func (s *RecoveryService) SetNotifier(n ports.Notifier) {
	s.notifier = n
}

// SetClock replaces the time source.
func (s *RecoveryService) SetClock(now func() time.Time) {
	s.now = now
}

// SetSeedSource replaces the chart jitter source.
func (s *RecoveryService) SetSeedSource(src domain.SeedSource) {
	s.seeds = src
}

// Now returns the service clock.
func (s *RecoveryService) Now() time.Time {
	return s.now()
}

// Dashboard computes the dashboard for the current instant.
func (s *RecoveryService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	p, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	d := domain.BuildDashboard(p, s.now(), s.recovery, s.milestones)
	metrics.SmokeFreeDays.Set(float64(d.Days))
	return &d, nil
}

// Metric returns one recovery card.
func (s *RecoveryService) Metric(ctx context.Context, id domain.MetricID) (domain.RecoveryMetric, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return domain.RecoveryMetric{}, err
	}
	if _, err := domain.RouteFor(id); err != nil {
		return domain.RecoveryMetric{}, err
	}
	return domain.BuildRecoveryMetric(id, days, s.recovery), nil
}

// Days returns the elapsed smoke-free days.
func (s *RecoveryService) Days(ctx context.Context) (int, error) {
	p, err := s.profiles.Load(ctx)
	if err != nil {
		return 0, err
	}
	return p.DaysSmokeFree(s.now()), nil
}

// Trend returns the chart series.
func (s *RecoveryService) Trend(ctx context.Context) ([]domain.DayPoint, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return nil, err
	}
	return domain.GenerateTrend(days, s.seeds), nil
}

// NextMilestone returns the upcoming milestone.
func (s *RecoveryService) NextMilestone(ctx context.Context) (domain.Milestone, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return domain.Milestone{}, err
	}
	return domain.NextMilestone(days, s.milestones), nil
}

// Predictions returns the projected health values.
func (s *RecoveryService) Predictions(ctx context.Context) ([]domain.Prediction, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return nil, err
	}
	return domain.PredictHealth(days), nil
}

// Savings returns the money saved so far.
func (s *RecoveryService) Savings(ctx context.Context) (domain.Savings, error) {
	p, err := s.profiles.Load(ctx)
	if err != nil {
		return domain.Savings{}, err
	}
	return domain.CalculateSavings(p.Habits, p.DaysSmokeFree(s.now())), nil
}

// SetQuitDate stores a new quit instant. Milestones already behind it are
// marked as celebrated so a backdated quit date does not replay them.
func (s *RecoveryService) SetQuitDate(ctx context.Context, at time.Time) error {
	if err := s.profiles.SetQuitDate(ctx, at); err != nil {
		return err
	}
	days := domain.ElapsedDays(at, s.now())
	return s.profiles.SetLastCelebrated(ctx, s.milestones.Reached(days))
}

// CelebrateMilestones announces every band boundary crossed since the last
// call and returns the descriptions announced. Each boundary is announced once.
func (s *RecoveryService) CelebrateMilestones(ctx context.Context) ([]string, error) {
	p, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	days := p.DaysSmokeFree(s.now())
	reached := s.milestones.Reached(days)
	if reached <= p.LastCelebrated {
		return nil, nil
	}

	var announced []string
	for i := p.LastCelebrated; i < reached; i++ {
		desc := s.milestones[i].Description
		announced = append(announced, desc)
		if s.notifier == nil {
			continue
		}
		if err := s.notifier.NotifyMilestone(desc, days); err != nil {
			logger.Warn("milestone notification failed", "milestone", desc, "err", err)
			continue
		}
		metrics.MilestonesCelebrated.Inc()
	}

	if err := s.profiles.SetLastCelebrated(ctx, reached); err != nil {
		return announced, err
	}
	logger.Info("milestones celebrated", "days", days, "count", len(announced))
	return announced, nil
}
