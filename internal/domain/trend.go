package domain

import "math/rand"

// MaxTrendPoints caps the number of days on the recovery chart.
const MaxTrendPoints = 30

// DayPoint is one illustrative day on the recovery chart. Values are
// generated, not measured.
type DayPoint struct {
	Day    int
	Lung   float64
	Heart  float64
	Energy float64
}

// Jitter yields values in [0, 1).
type Jitter interface {
	Float64() float64
}

// SeedSource creates a deterministic jitter stream for a seed. The same seed
// must always produce the same stream.
type SeedSource func(seed int64) Jitter

// DefaultSeedSource uses a math/rand source keyed by the seed.
func DefaultSeedSource(seed int64) Jitter {
	return rand.New(rand.NewSource(seed))
}

// TrendSize returns the number of points for the elapsed days.
func TrendSize(days int) int {
	n := days + 1
	if n > MaxTrendPoints {
		n = MaxTrendPoints
	}
	if n < 1 {
		n = 1
	}
	return n
}

// GenerateTrend builds the chart series for the elapsed days. Each day index
// seeds its own jitter stream, so a series is identical across renders.
func GenerateTrend(days int, src SeedSource) []DayPoint {
	if src == nil {
		src = DefaultSeedSource
	}
	size := TrendSize(days)
	points := make([]DayPoint, size)
	for i := 0; i < size; i++ {
		r := src(int64(i))
		j := func(a float64) float64 { return (r.Float64() - 0.5) * a }
		x := float64(i)
		points[i] = DayPoint{
			Day:    i + 1,
			Lung:   clampPercent(40 + x*2.0 + j(5)),
			Heart:  clampPercent(50 + x*1.8 + j(4)),
			Energy: clampPercent(35 + x*2.2 + j(6)),
		}
	}
	return points
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
