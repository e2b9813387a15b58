package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// biometricRepository implements ports.BiometricRepository using SQLite.
type biometricRepository struct {
	db *sql.DB
}

func newBiometricRepository(db *sql.DB) ports.BiometricRepository {
	return &biometricRepository{db: db}
}

// Save persists a reading.
func (r *biometricRepository) Save(ctx context.Context, b *domain.BiometricReading) error {
	query := `
		INSERT INTO biometrics (id, systolic, diastolic, pulse, spo2, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.Systolic, b.Diastolic, b.Pulse, b.SpO2, b.RecordedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save biometric reading: %w", err)
	}
	return nil
}

// FindRecent returns the newest readings first.
func (r *biometricRepository) FindRecent(ctx context.Context, limit int) ([]*domain.BiometricReading, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, systolic, diastolic, pulse, spo2, recorded_at
		FROM biometrics
		ORDER BY recorded_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query biometrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var readings []*domain.BiometricReading
	for rows.Next() {
		var b domain.BiometricReading
		var recordedAt int64
		if err := rows.Scan(&b.ID, &b.Systolic, &b.Diastolic, &b.Pulse, &b.SpO2, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan biometric reading: %w", err)
		}
		b.RecordedAt = time.UnixMilli(recordedAt)
		readings = append(readings, &b)
	}
	return readings, rows.Err()
}
