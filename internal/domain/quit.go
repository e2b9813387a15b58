package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ResolveQuitInstant turns a stored quit value into a concrete instant.
// The value may be ISO-8601 text or epoch milliseconds written as text.
// Anything empty or unparseable resolves to now, meaning "just quit".
func ResolveQuitInstant(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}

	return now
}

// ElapsedDays returns the whole days between quit and now, floored at zero.
// A quit instant in the future (a planned quit date) counts as zero days.
func ElapsedDays(quit, now time.Time) int {
	d := now.Sub(quit)
	if d <= 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// FormatQuitInstant renders an instant in the form ResolveQuitInstant reads back.
func FormatQuitInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// quitInputLayouts are the forms accepted when the user types a quit date.
var quitInputLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseQuitInput reads a quit date typed by the user. Unlike
// ResolveQuitInstant it rejects bad input instead of falling back. An empty
// string means now. Dates without a zone are read in loc.
func ParseQuitInput(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "now") {
		return now, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range quitInputLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\" or RFC3339)", ErrInvalidQuitDate, raw)
}
