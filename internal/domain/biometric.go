package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BiometricReading is one manual health entry.
type BiometricReading struct {
	ID         string
	Systolic   int
	Diastolic  int
	Pulse      int
	SpO2       int
	RecordedAt time.Time
}

// BloodPressure renders the reading as "systolic/diastolic".
func (b BiometricReading) BloodPressure() string {
	return fmt.Sprintf("%d/%d", b.Systolic, b.Diastolic)
}

// BiometricInput is the raw text typed by the user.
type BiometricInput struct {
	Systolic  string
	Diastolic string
	Pulse     string
	SpO2      string
}

type biometricField struct {
	name     string
	raw      string
	min, max int
	dst      *int
}

// ParseBiometrics validates raw input and builds a reading. Any non-numeric
// or out-of-range field rejects the whole entry.
func ParseBiometrics(in BiometricInput, at time.Time) (*BiometricReading, error) {
	r := &BiometricReading{RecordedAt: at}
	fields := []biometricField{
		{"systolic", in.Systolic, 50, 250, &r.Systolic},
		{"diastolic", in.Diastolic, 30, 150, &r.Diastolic},
		{"pulse", in.Pulse, 30, 220, &r.Pulse},
		{"spo2", in.SpO2, 50, 100, &r.SpO2},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f.raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidBiometric, f.name)
		}
		if v < f.min || v > f.max {
			return nil, fmt.Errorf("%w: %s %d outside %d-%d", ErrInvalidBiometric, f.name, v, f.min, f.max)
		}
		*f.dst = v
	}
	if r.Systolic <= r.Diastolic {
		return nil, fmt.Errorf("%w: systolic must be greater than diastolic", ErrInvalidBiometric)
	}
	r.ID = generateID()
	return r, nil
}
