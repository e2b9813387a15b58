package domain

import (
	"strings"
	"testing"
)

func TestNextMilestone_Bands(t *testing.T) {
	table := DefaultMilestoneTable()

	tests := []struct {
		days          int
		wantPrefix    string
		wantCountdown string
	}{
		{0, "20 minutes", "In about 20 minutes"},
		{1, "72 hours", "In 2 days"},
		{2, "72 hours", "In 1 day"},
		{3, "2 weeks", "In 11 days"},
		{10, "2 weeks", "In 4 days"},
		{13, "2 weeks", "In 1 day"},
		{14, "3 months", "In 76 days"},
		{89, "3 months", "In 1 day"},
		{90, "1 year", "In 275 days"},
		{364, "1 year", "In 1 day"},
		{365, "1 year", "Reached"},
		{1000, "1 year", "Reached"},
		{-3, "20 minutes", "In about 20 minutes"},
	}

	for _, tt := range tests {
		m := NextMilestone(tt.days, table)
		if !strings.HasPrefix(m.Description, tt.wantPrefix) {
			t.Errorf("NextMilestone(%d).Description = %q, want prefix %q", tt.days, m.Description, tt.wantPrefix)
		}
		if m.Countdown != tt.wantCountdown {
			t.Errorf("NextMilestone(%d).Countdown = %q, want %q", tt.days, m.Countdown, tt.wantCountdown)
		}
	}
}

func TestNextMilestone_BoundaryBelongsToLaterBand(t *testing.T) {
	table := DefaultMilestoneTable()
	for _, b := range table[:len(table)-1] {
		at := NextMilestone(b.UpperDays, table)
		before := NextMilestone(b.UpperDays-1, table)
		if at.Description == before.Description {
			t.Errorf("day %d should start a new band, still %q", b.UpperDays, at.Description)
		}
	}
}

func TestNextMilestone_EmptyTableUsesDefault(t *testing.T) {
	m := NextMilestone(10, nil)
	if m.Description != "2 weeks: Circulation improves" {
		t.Errorf("Description = %q, want default table", m.Description)
	}
}

func TestNewMilestoneTable(t *testing.T) {
	tests := []struct {
		name       string
		thresholds []int
		wantErr    bool
	}{
		{"default", []int{1, 3, 14, 90, 365}, false},
		{"custom", []int{2, 5, 21, 120, 400}, false},
		{"too few", []int{1, 3, 14}, true},
		{"not increasing", []int{1, 14, 3, 90, 365}, true},
		{"zero", []int{0, 3, 14, 90, 365}, true},
		{"duplicate", []int{1, 3, 3, 90, 365}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMilestoneTable(tt.thresholds)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewMilestoneTable(%v) error = %v, wantErr %v", tt.thresholds, err, tt.wantErr)
			}
		})
	}
}

func TestMilestoneTable_CustomThresholds(t *testing.T) {
	table, err := NewMilestoneTable([]int{2, 5, 21, 120, 400})
	if err != nil {
		t.Fatalf("NewMilestoneTable() error = %v", err)
	}

	m := NextMilestone(5, table)
	if m.Description != "2 weeks: Circulation improves" || m.Countdown != "In 16 days" {
		t.Errorf("NextMilestone(5) = %+v", m)
	}
}

func TestMilestoneTable_Reached(t *testing.T) {
	table := DefaultMilestoneTable()
	tests := []struct {
		days int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{14, 3},
		{90, 4},
		{365, 5},
		{900, 5},
	}
	for _, tt := range tests {
		if got := table.Reached(tt.days); got != tt.want {
			t.Errorf("Reached(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}
