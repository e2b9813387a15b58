// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xvierd/smokefree-cli/internal/ports"
	"modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db            *sql.DB
	prefStore     ports.PreferenceStore
	cravingRepo   ports.CravingRepository
	biometricRepo ports.BiometricRepository
	chatRepo      ports.ChatRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:            db,
		prefStore:     newPreferenceStore(db),
		cravingRepo:   newCravingRepository(db),
		biometricRepo: newBiometricRepository(db),
		chatRepo:      newChatRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Preferences returns the preference store.
func (s *sqliteStorage) Preferences() ports.PreferenceStore {
	return s.prefStore
}

// Cravings returns the craving repository.
func (s *sqliteStorage) Cravings() ports.CravingRepository {
	return s.cravingRepo
}

// Biometrics returns the biometric repository.
func (s *sqliteStorage) Biometrics() ports.BiometricRepository {
	return s.biometricRepo
}

// Chat returns the chat repository.
func (s *sqliteStorage) Chat() ports.ChatRepository {
	return s.chatRepo
}

// Reset deletes every row from every table in one transaction.
func (s *sqliteStorage) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset: %w", err)
	}
	for _, table := range []string{"preferences", "cravings", "biometrics", "chat_messages"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
// Instants are stored as unix milliseconds so range queries compare numerically.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS cravings (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		intensity INTEGER NOT NULL,
		trigger_tag TEXT,
		note TEXT,
		overcome INTEGER NOT NULL DEFAULT 0,
		logged_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cravings_logged ON cravings(logged_at);

	CREATE TABLE IF NOT EXISTS biometrics (
		id TEXT PRIMARY KEY,
		systolic INTEGER NOT NULL,
		diastolic INTEGER NOT NULL,
		pulse INTEGER NOT NULL,
		spo2 INTEGER NOT NULL,
		recorded_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_biometrics_recorded ON biometrics(recorded_at);

	CREATE TABLE IF NOT EXISTS chat_messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		text TEXT NOT NULL,
		fallback INTEGER NOT NULL DEFAULT 0,
		sent_at INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// isUniqueConstraintError checks if an error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	sqliteErr, ok := err.(*sqlite.Error)
	if !ok {
		return false
	}
	code := sqliteErr.Code()
	return code == 2067 || code == 1555 // SQLITE_CONSTRAINT_UNIQUE, SQLITE_CONSTRAINT_PRIMARYKEY
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
