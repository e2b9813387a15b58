package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTrendSize(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{-10, 1},
		{0, 1},
		{1, 2},
		{10, 11},
		{29, 30},
		{30, 30},
		{500, 30},
	}
	for _, tt := range tests {
		if got := TrendSize(tt.days); got != tt.want {
			t.Errorf("TrendSize(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestGenerateTrend_Deterministic(t *testing.T) {
	for _, days := range []int{0, 5, 29, 120} {
		first := GenerateTrend(days, DefaultSeedSource)
		second := GenerateTrend(days, DefaultSeedSource)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("GenerateTrend(%d) not reproducible (-first +second):\n%s", days, diff)
		}
		if len(first) != TrendSize(days) {
			t.Errorf("GenerateTrend(%d) length = %d, want %d", days, len(first), TrendSize(days))
		}
	}
}

func TestGenerateTrend_PrefixStable(t *testing.T) {
	short := GenerateTrend(4, nil)
	long := GenerateTrend(20, nil)
	if diff := cmp.Diff(short, long[:len(short)]); diff != "" {
		t.Errorf("day points should depend only on their index (-short +long):\n%s", diff)
	}
}

func TestGenerateTrend_Bounded(t *testing.T) {
	for i, p := range GenerateTrend(100, DefaultSeedSource) {
		if p.Day != i+1 {
			t.Errorf("point %d Day = %d, want %d", i, p.Day, i+1)
		}
		for _, v := range []float64{p.Lung, p.Heart, p.Energy} {
			if v < 0 || v > 100 {
				t.Errorf("point %d value %v outside [0,100]", i, v)
			}
		}
	}
}

// constJitter always returns the midpoint, so jitter is zero.
type constJitter struct{}

func (constJitter) Float64() float64 { return 0.5 }

func TestGenerateTrend_InjectedSource(t *testing.T) {
	src := func(int64) Jitter { return constJitter{} }
	got := GenerateTrend(2, src)

	want := []DayPoint{
		{Day: 1, Lung: 40, Heart: 50, Energy: 35},
		{Day: 2, Lung: 42, Heart: 51.8, Energy: 37.2},
		{Day: 3, Lung: 44, Heart: 53.6, Energy: 39.4},
	}
	opt := cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-9 && d > -1e-9
	})
	if diff := cmp.Diff(want, got, opt); diff != "" {
		t.Errorf("GenerateTrend() mismatch (-want +got):\n%s", diff)
	}
}

// highJitter pushes every value to the top of its jitter range.
type highJitter struct{}

func (highJitter) Float64() float64 { return 0.99 }

func TestGenerateTrend_SaturatesAt100(t *testing.T) {
	points := GenerateTrend(29, func(int64) Jitter { return highJitter{} })
	last := points[len(points)-1]
	// energy at index 29 is 35 + 63.8 + 2.94 before clamping
	if last.Energy != 100 {
		t.Errorf("last energy = %v, want 100", last.Energy)
	}
	if first := points[0]; first.Lung >= 100 {
		t.Errorf("first lung = %v, want below 100", first.Lung)
	}
}
