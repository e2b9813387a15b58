package domain

import (
	"fmt"
	"strings"
	"time"
)

// CravingType classifies what drove a craving.
type CravingType string

const (
	CravingPhysical    CravingType = "physical"
	CravingHabitual    CravingType = "habitual"
	CravingSocial      CravingType = "social"
	CravingEmotional   CravingType = "emotional"
	CravingSituational CravingType = "situational"
	CravingOther       CravingType = "other"
)

// ValidCravingTypes lists all supported craving types.
var ValidCravingTypes = []CravingType{
	CravingPhysical,
	CravingHabitual,
	CravingSocial,
	CravingEmotional,
	CravingSituational,
	CravingOther,
}

// ValidateCravingType checks if a string is a valid craving type.
func ValidateCravingType(s string) (CravingType, error) {
	c := CravingType(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range ValidCravingTypes {
		if c == valid {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: type %q must be one of physical, habitual, social, emotional, situational, other", ErrInvalidCraving, s)
}

// Label returns a human-readable label.
func (c CravingType) Label() string {
	switch c {
	case CravingPhysical:
		return "Physical"
	case CravingHabitual:
		return "Habitual"
	case CravingSocial:
		return "Social"
	case CravingEmotional:
		return "Emotional"
	case CravingSituational:
		return "Situational"
	case CravingOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Hint returns the short explanation shown next to the type.
func (c CravingType) Hint() string {
	switch c {
	case CravingPhysical:
		return "Body wants nicotine"
	case CravingHabitual:
		return "Routine trigger"
	case CravingSocial:
		return "Around smokers"
	case CravingEmotional:
		return "Stress or mood"
	case CravingSituational:
		return "Specific activity"
	default:
		return "Something else"
	}
}

// Triggers are the common situations the user can tag a craving with.
var Triggers = []string{"coffee", "alcohol", "social", "stress", "driving", "breaks"}

// Craving is a single logged urge to smoke.
type Craving struct {
	ID        string
	Type      CravingType
	Intensity int // 1 to 10
	Trigger   string
	Note      string
	Overcome  bool
	LoggedAt  time.Time
}

// NewCraving creates a craving logged at the given instant.
func NewCraving(t CravingType, intensity int, trigger string, at time.Time) (*Craving, error) {
	if _, err := ValidateCravingType(string(t)); err != nil {
		return nil, err
	}
	if intensity < 1 || intensity > 10 {
		return nil, fmt.Errorf("%w: intensity %d must be between 1 and 10", ErrInvalidCraving, intensity)
	}
	return &Craving{
		ID:        generateID(),
		Type:      t,
		Intensity: intensity,
		Trigger:   strings.ToLower(strings.TrimSpace(trigger)),
		LoggedAt:  at,
	}, nil
}

// MarkOvercome records that the user did not smoke.
func (c *Craving) MarkOvercome() {
	c.Overcome = true
}

// CravingSummary counts cravings for one local day.
type CravingSummary struct {
	Date     time.Time
	Logged   int
	Overcome int
}

// Rate returns the share of cravings overcome, 0 when none were logged.
func (s CravingSummary) Rate() float64 {
	if s.Logged == 0 {
		return 0
	}
	return float64(s.Overcome) / float64(s.Logged)
}

// FilterByDate keeps the cravings logged on the same local calendar day as date.
func FilterByDate(cravings []*Craving, date time.Time) []*Craving {
	y, m, d := date.Date()
	var out []*Craving
	for _, c := range cravings {
		cy, cm, cd := c.LoggedAt.In(date.Location()).Date()
		if cy == y && cm == m && cd == d {
			out = append(out, c)
		}
	}
	return out
}

// Summarize counts the cravings logged on date.
func Summarize(cravings []*Craving, date time.Time) CravingSummary {
	day := FilterByDate(cravings, date)
	s := CravingSummary{Date: date, Logged: len(day)}
	for _, c := range day {
		if c.Overcome {
			s.Overcome++
		}
	}
	return s
}
