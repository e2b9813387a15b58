package domain

import (
	"fmt"
	"time"
)

// Habits describes the user's smoking habit before quitting.
type Habits struct {
	CigarettesPerDay  int
	CostPerPack       float64
	CigarettesPerPack int
	Currency          string
}

// DefaultHabits returns the habit values used until the user sets their own.
func DefaultHabits() Habits {
	return Habits{
		CigarettesPerDay:  10,
		CostPerPack:       10.0,
		CigarettesPerPack: 20,
		Currency:          "₹",
	}
}

// Validate checks that the habit values can drive the savings calculation.
func (h Habits) Validate() error {
	if h.CigarettesPerDay < 0 {
		return fmt.Errorf("%w: cigarettes per day must not be negative", ErrInvalidHabits)
	}
	if h.CostPerPack < 0 {
		return fmt.Errorf("%w: cost per pack must not be negative", ErrInvalidHabits)
	}
	if h.CigarettesPerPack <= 0 {
		return fmt.Errorf("%w: cigarettes per pack must be positive", ErrInvalidHabits)
	}
	return nil
}

// Profile is the explicit user state handed to the calculations.
// It is loaded once from the preferences store instead of being read ad hoc.
type Profile struct {
	UserID   int
	Name     string
	Email    string
	QuitDate string // raw stored value, see ResolveQuitInstant
	Habits   Habits
	DarkMode bool

	// LastCelebrated is the number of milestone bands already celebrated.
	LastCelebrated int
}

// QuitInstant resolves the stored quit value against now.
func (p Profile) QuitInstant(now time.Time) time.Time {
	return ResolveQuitInstant(p.QuitDate, now)
}

// DaysSmokeFree returns the elapsed smoke-free days at now.
func (p Profile) DaysSmokeFree(now time.Time) int {
	return ElapsedDays(p.QuitInstant(now), now)
}

// HasQuitDate reports whether a quit value has been stored at all.
func (p Profile) HasQuitDate() bool {
	return p.QuitDate != ""
}
