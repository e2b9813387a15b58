package domain

import (
	"fmt"
	"sort"
)

// Milestone is the next health milestone shown to the user.
type Milestone struct {
	ThresholdDays int
	Description   string
	Countdown     string
}

// MilestoneBand is one entry of the milestone table. A band applies while
// the elapsed days are strictly below UpperDays; the last band also applies
// beyond it.
type MilestoneBand struct {
	UpperDays   int
	Description string
	// Countdown overrides the computed "In N days" text when set.
	Countdown string
}

// MilestoneTable is an ordered set of non-overlapping bands.
type MilestoneTable []MilestoneBand

var milestoneDescriptions = []string{
	"20 minutes: Heart rate normalizes",
	"72 hours: Breathing easier",
	"2 weeks: Circulation improves",
	"3 months: Lung function +30%",
	"1 year: Heart disease risk cut in half!",
}

// DefaultMilestoneThresholds are the band boundaries in days.
var DefaultMilestoneThresholds = []int{1, 3, 14, 90, 365}

// DefaultMilestoneTable returns the standard milestone bands.
func DefaultMilestoneTable() MilestoneTable {
	t, _ := NewMilestoneTable(DefaultMilestoneThresholds)
	return t
}

// NewMilestoneTable builds the table from configured boundaries. There must
// be one strictly increasing, positive boundary per milestone.
func NewMilestoneTable(thresholds []int) (MilestoneTable, error) {
	if len(thresholds) != len(milestoneDescriptions) {
		return nil, fmt.Errorf("milestone table needs %d thresholds, got %d", len(milestoneDescriptions), len(thresholds))
	}
	if !sort.IntsAreSorted(thresholds) || thresholds[0] <= 0 {
		return nil, fmt.Errorf("milestone thresholds must be positive and increasing: %v", thresholds)
	}
	table := make(MilestoneTable, len(thresholds))
	for i, upper := range thresholds {
		if i > 0 && upper == thresholds[i-1] {
			return nil, fmt.Errorf("duplicate milestone threshold %d", upper)
		}
		table[i] = MilestoneBand{UpperDays: upper, Description: milestoneDescriptions[i]}
	}
	table[0].Countdown = "In about 20 minutes"
	return table, nil
}

// bandIndex returns the band that applies to days. A day count equal to a
// boundary belongs to the later band.
func (t MilestoneTable) bandIndex(days int) int {
	for i, b := range t {
		if days < b.UpperDays {
			return i
		}
	}
	return len(t) - 1
}

// Reached returns how many band boundaries days has passed.
func (t MilestoneTable) Reached(days int) int {
	n := 0
	for _, b := range t {
		if days >= b.UpperDays {
			n++
		}
	}
	return n
}

// NextMilestone selects the milestone for the elapsed days.
func NextMilestone(days int, t MilestoneTable) Milestone {
	if len(t) == 0 {
		t = DefaultMilestoneTable()
	}
	if days < 0 {
		days = 0
	}
	b := t[t.bandIndex(days)]
	return Milestone{
		ThresholdDays: b.UpperDays,
		Description:   b.Description,
		Countdown:     countdown(b, days),
	}
}

func countdown(b MilestoneBand, days int) string {
	if b.Countdown != "" {
		return b.Countdown
	}
	left := b.UpperDays - days
	switch {
	case left <= 0:
		return "Reached"
	case left == 1:
		return "In 1 day"
	default:
		return fmt.Sprintf("In %d days", left)
	}
}
