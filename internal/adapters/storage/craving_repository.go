package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// cravingRepository implements ports.CravingRepository using SQLite.
type cravingRepository struct {
	db *sql.DB
}

// newCravingRepository creates a new craving repository.
func newCravingRepository(db *sql.DB) ports.CravingRepository {
	return &cravingRepository{db: db}
}

// Save persists a craving to storage.
func (r *cravingRepository) Save(ctx context.Context, c *domain.Craving) error {
	query := `
		INSERT INTO cravings (id, type, intensity, trigger_tag, note, overcome, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		string(c.Type),
		c.Intensity,
		c.Trigger,
		c.Note,
		boolToInt(c.Overcome),
		c.LoggedAt.UnixMilli(),
	)

	if isUniqueConstraintError(err) {
		return fmt.Errorf("craving %s already exists", c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save craving: %w", err)
	}

	return nil
}

// FindByID retrieves a craving by its unique identifier.
func (r *cravingRepository) FindByID(ctx context.Context, id string) (*domain.Craving, error) {
	query := `
		SELECT id, type, intensity, trigger_tag, note, overcome, logged_at
		FROM cravings
		WHERE id = ?
	`

	c, err := scanCraving(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrCravingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find craving: %w", err)
	}
	return c, nil
}

// FindSince returns cravings logged at or after since, newest first.
func (r *cravingRepository) FindSince(ctx context.Context, since time.Time) ([]*domain.Craving, error) {
	query := `
		SELECT id, type, intensity, trigger_tag, note, overcome, logged_at
		FROM cravings
		WHERE logged_at >= ?
		ORDER BY logged_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query cravings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cravings []*domain.Craving
	for rows.Next() {
		c, err := scanCraving(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan craving: %w", err)
		}
		cravings = append(cravings, c)
	}

	return cravings, rows.Err()
}

// Update modifies an existing craving.
func (r *cravingRepository) Update(ctx context.Context, c *domain.Craving) error {
	query := `
		UPDATE cravings
		SET type = ?, intensity = ?, trigger_tag = ?, note = ?, overcome = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		string(c.Type),
		c.Intensity,
		c.Trigger,
		c.Note,
		boolToInt(c.Overcome),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update craving: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrCravingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCraving(row rowScanner) (*domain.Craving, error) {
	var c domain.Craving
	var typ string
	var trigger, note sql.NullString
	var overcome int
	var loggedAt int64

	if err := row.Scan(&c.ID, &typ, &c.Intensity, &trigger, &note, &overcome, &loggedAt); err != nil {
		return nil, err
	}

	c.Type = domain.CravingType(typ)
	c.Trigger = trigger.String
	c.Note = note.String
	c.Overcome = overcome != 0
	c.LoggedAt = time.UnixMilli(loggedAt)
	return &c, nil
}
