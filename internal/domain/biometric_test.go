package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseBiometrics_Valid(t *testing.T) {
	at := time.Now()
	r, err := ParseBiometrics(BiometricInput{Systolic: "120", Diastolic: " 80", Pulse: "72", SpO2: "98"}, at)
	if err != nil {
		t.Fatalf("ParseBiometrics() error = %v", err)
	}
	if r.ID == "" {
		t.Error("reading ID is empty")
	}
	if r.BloodPressure() != "120/80" {
		t.Errorf("BloodPressure() = %q, want 120/80", r.BloodPressure())
	}
	if r.Pulse != 72 || r.SpO2 != 98 {
		t.Errorf("reading = %+v", r)
	}
	if !r.RecordedAt.Equal(at) {
		t.Errorf("RecordedAt = %v, want %v", r.RecordedAt, at)
	}
}

func TestParseBiometrics_Rejects(t *testing.T) {
	valid := BiometricInput{Systolic: "120", Diastolic: "80", Pulse: "72", SpO2: "98"}

	tests := []struct {
		name   string
		modify func(*BiometricInput)
	}{
		{"non numeric pulse", func(in *BiometricInput) { in.Pulse = "fast" }},
		{"empty spo2", func(in *BiometricInput) { in.SpO2 = "" }},
		{"decimal systolic", func(in *BiometricInput) { in.Systolic = "120.5" }},
		{"spo2 above 100", func(in *BiometricInput) { in.SpO2 = "101" }},
		{"pulse too low", func(in *BiometricInput) { in.Pulse = "10" }},
		{"diastolic above systolic", func(in *BiometricInput) { in.Systolic = "90"; in.Diastolic = "95" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.modify(&in)
			r, err := ParseBiometrics(in, time.Now())
			if !errors.Is(err, ErrInvalidBiometric) {
				t.Errorf("ParseBiometrics() error = %v, want ErrInvalidBiometric", err)
			}
			if r != nil {
				t.Errorf("ParseBiometrics() returned reading %+v for invalid input", r)
			}
		})
	}
}
