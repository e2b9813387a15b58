package api

import (
	"testing"
	"time"
)

func TestTokenExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"future exp", signToken(t, 1, now.Add(time.Hour)), false},
		{"past exp", signToken(t, 1, now.Add(-time.Hour)), true},
		{"opaque token", "abcdef", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenUserID(t *testing.T) {
	id, ok := TokenUserID(signToken(t, 42, time.Now().Add(time.Hour)))
	if !ok || id != 42 {
		t.Errorf("TokenUserID() = %d, %v, want 42, true", id, ok)
	}
	if _, ok := TokenUserID("opaque"); ok {
		t.Error("TokenUserID() should fail for non-JWT tokens")
	}
}
