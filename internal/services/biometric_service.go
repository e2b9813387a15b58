package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// BiometricService handles manual health entries.
type BiometricService struct {
	storage ports.Storage
	now     func() time.Time
}

// NewBiometricService creates a new biometric service.
func NewBiometricService(storage ports.Storage) *BiometricService {
	return &BiometricService{storage: storage, now: time.Now}
}

// Add validates the raw input and stores the reading. Invalid input stores nothing.
func (s *BiometricService) Add(ctx context.Context, in domain.BiometricInput) (*domain.BiometricReading, error) {
	r, err := domain.ParseBiometrics(in, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.storage.Biometrics().Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save reading: %w", err)
	}
	return r, nil
}

// Recent returns the newest readings first.
func (s *BiometricService) Recent(ctx context.Context, limit int) ([]*domain.BiometricReading, error) {
	return s.storage.Biometrics().FindRecent(ctx, limit)
}
