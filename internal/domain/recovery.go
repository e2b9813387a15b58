package domain

import (
	"fmt"
	"math"
	"strings"
)

// DefaultHorizonDays is the number of smoke-free days at which every
// metric reaches full recovery at rate 1.0.
const DefaultHorizonDays = 365.0

// MetricID identifies a body system tracked on the dashboard.
type MetricID string

const (
	MetricLung   MetricID = "lung"
	MetricHeart  MetricID = "heart"
	MetricEnergy MetricID = "energy"
	MetricTaste  MetricID = "taste"
)

// AllMetrics lists the metrics in dashboard order.
var AllMetrics = []MetricID{MetricLung, MetricHeart, MetricEnergy, MetricTaste}

// Label returns a human-readable label.
func (m MetricID) Label() string {
	switch m {
	case MetricLung:
		return "Lung Capacity"
	case MetricHeart:
		return "Heart Health"
	case MetricEnergy:
		return "Energy Levels"
	case MetricTaste:
		return "Taste & Smell"
	default:
		return "Unknown"
	}
}

// ParseMetricID checks if a string is a known metric id.
func ParseMetricID(s string) (MetricID, error) {
	m := MetricID(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range AllMetrics {
		if m == valid {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// RecoveryConfig holds the per-metric rate multipliers. The values are
// product constants, not clinical data.
type RecoveryConfig struct {
	HorizonDays float64
	Rates       map[MetricID]float64
}

// DefaultRecoveryConfig returns the standard recovery rates.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		HorizonDays: DefaultHorizonDays,
		Rates: map[MetricID]float64{
			MetricLung:   1.0,
			MetricHeart:  1.2,
			MetricEnergy: 1.5,
			MetricTaste:  2.0,
		},
	}
}

// Rate returns the multiplier for a metric, 1.0 when unset.
func (c RecoveryConfig) Rate(id MetricID) float64 {
	if r, ok := c.Rates[id]; ok && r > 0 {
		return r
	}
	return 1.0
}

func (c RecoveryConfig) horizon() float64 {
	if c.HorizonDays <= 0 {
		return DefaultHorizonDays
	}
	return c.HorizonDays
}

// RecoveryProgress maps days to a percentage over the default horizon.
func RecoveryProgress(days float64) float64 {
	return progressOver(days, DefaultHorizonDays)
}

// progressOver is min(100, days/horizon*100), floored at zero.
func progressOver(days, horizon float64) float64 {
	if days <= 0 || math.IsNaN(days) {
		return 0
	}
	p := days / horizon * 100
	if p > 100 {
		return 100
	}
	return p
}

// RecoveryMetric is one dashboard card.
type RecoveryMetric struct {
	ID       MetricID
	Label    string
	Progress float64
	Status   string
	Target   Route
}

// BuildRecoveryMetrics computes every dashboard card for the elapsed days.
func BuildRecoveryMetrics(days int, cfg RecoveryConfig) []RecoveryMetric {
	metrics := make([]RecoveryMetric, 0, len(AllMetrics))
	for _, id := range AllMetrics {
		metrics = append(metrics, BuildRecoveryMetric(id, days, cfg))
	}
	return metrics
}

// BuildRecoveryMetric computes a single card.
func BuildRecoveryMetric(id MetricID, days int, cfg RecoveryConfig) RecoveryMetric {
	target, _ := RouteFor(id)
	return RecoveryMetric{
		ID:       id,
		Label:    id.Label(),
		Progress: progressOver(float64(days)*cfg.Rate(id), cfg.horizon()),
		Status:   metricStatus(id, days),
		Target:   target,
	}
}

// OverallRecovery is the rounded unscaled progress shown in the header card.
func OverallRecovery(days int, cfg RecoveryConfig) int {
	return int(math.Round(progressOver(float64(days), cfg.horizon())))
}

func metricStatus(id MetricID, days int) string {
	switch id {
	case MetricLung:
		switch {
		case days < 7:
			return "Beginning recovery"
		case days < 30:
			return "Improving"
		default:
			return "Great progress"
		}
	case MetricHeart:
		if days < 2 {
			return "Normalizing"
		}
		return "Improved circulation"
	case MetricEnergy:
		if days < 14 {
			return "Increasing"
		}
		return "Much better"
	case MetricTaste:
		if days < 3 {
			return "Starting to return"
		}
		return "Restored"
	default:
		return ""
	}
}
