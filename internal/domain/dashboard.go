package domain

import "time"

// Dashboard is everything the home view shows, computed for one instant.
type Dashboard struct {
	Name        string
	QuitInstant time.Time
	Days        int
	Overall     int
	Metrics     []RecoveryMetric
	Next        Milestone
	Savings     Savings
}

// BuildDashboard computes the dashboard from the profile at now.
func BuildDashboard(p Profile, now time.Time, rc RecoveryConfig, mt MilestoneTable) Dashboard {
	quit := p.QuitInstant(now)
	days := ElapsedDays(quit, now)
	return Dashboard{
		Name:        p.Name,
		QuitInstant: quit,
		Days:        days,
		Overall:     OverallRecovery(days, rc),
		Metrics:     BuildRecoveryMetrics(days, rc),
		Next:        NextMilestone(days, mt),
		Savings:     CalculateSavings(p.Habits, days),
	}
}

// Metric returns the card for id.
func (d Dashboard) Metric(id MetricID) (RecoveryMetric, bool) {
	for _, m := range d.Metrics {
		if m.ID == id {
			return m, true
		}
	}
	return RecoveryMetric{}, false
}
