// Package ports defines the interfaces (driven and driving ports)
// for smokefree following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
)

// Preference keys stored in the key-value table.
const (
	PrefUserID            = "user_id"
	PrefName              = "name"
	PrefEmail             = "email"
	PrefQuitDate          = "quit_date"
	PrefCigarettesPerDay  = "cigarettes_per_day"
	PrefCostPerPack       = "cost_per_pack"
	PrefCigarettesPerPack = "cigarettes_per_pack"
	PrefCurrency          = "currency"
	PrefDarkMode          = "dark_mode"
	PrefLastCelebrated    = "last_celebrated_milestone"
)

// PreferenceStore is the local key-value store for user settings.
// This is a driven port (implemented by adapters).
type PreferenceStore interface {
	// Get returns the value for key or domain.ErrPreferenceMissing.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// All returns every stored preference.
	All(ctx context.Context) (map[string]string, error)
}

// CravingRepository defines the interface for craving persistence.
// This is a driven port (implemented by adapters).
type CravingRepository interface {
	// Save persists a craving to storage.
	Save(ctx context.Context, c *domain.Craving) error

	// FindByID retrieves a craving by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.Craving, error)

	// FindSince returns cravings logged at or after since, newest first.
	FindSince(ctx context.Context, since time.Time) ([]*domain.Craving, error)

	// Update modifies an existing craving.
	Update(ctx context.Context, c *domain.Craving) error
}

// BiometricRepository defines the interface for biometric persistence.
// This is a driven port (implemented by adapters).
type BiometricRepository interface {
	// Save persists a reading.
	Save(ctx context.Context, r *domain.BiometricReading) error

	// FindRecent returns the newest readings, up to limit.
	FindRecent(ctx context.Context, limit int) ([]*domain.BiometricReading, error)
}

// ChatRepository stores the append-only coach conversation.
// This is a driven port (implemented by adapters).
type ChatRepository interface {
	// Append adds a message to the end of the log.
	Append(ctx context.Context, m *domain.ChatMessage) error

	// History returns the log in order, oldest first, up to limit (0 for all).
	History(ctx context.Context, limit int) ([]*domain.ChatMessage, error)

	// Clear removes every message.
	Clear(ctx context.Context) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Preferences provides access to the key-value settings.
	Preferences() PreferenceStore

	// Cravings provides access to craving operations.
	Cravings() CravingRepository

	// Biometrics provides access to biometric operations.
	Biometrics() BiometricRepository

	// Chat provides access to the chat log.
	Chat() ChatRepository

	// Reset deletes every stored row.
	Reset(ctx context.Context) error

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
