package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/xvierd/smokefree-cli/internal/domain"
)

// Mock implementations for testing interfaces.

type mockPreferenceStore struct {
	values map[string]string
}

func (m *mockPreferenceStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrPreferenceMissing
	}
	return v, nil
}

func (m *mockPreferenceStore) Set(ctx context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

func (m *mockPreferenceStore) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *mockPreferenceStore) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

var _ PreferenceStore = (*mockPreferenceStore)(nil)

func TestMockPreferenceStore(t *testing.T) {
	store := &mockPreferenceStore{values: make(map[string]string)}
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		if err := store.Set(ctx, PrefQuitDate, "2026-01-01T00:00:00Z"); err != nil {
			t.Errorf("Set() error = %v", err)
		}
		got, err := store.Get(ctx, PrefQuitDate)
		if err != nil {
			t.Errorf("Get() error = %v", err)
		}
		if got != "2026-01-01T00:00:00Z" {
			t.Errorf("Get() = %q", got)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, PrefName)
		if !errors.Is(err, domain.ErrPreferenceMissing) {
			t.Errorf("Get() error = %v, want ErrPreferenceMissing", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = store.Delete(ctx, PrefQuitDate)
		all, _ := store.All(ctx)
		if len(all) != 0 {
			t.Errorf("All() returned %d values after delete, want 0", len(all))
		}
	})
}
