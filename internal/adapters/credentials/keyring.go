// Package credentials keeps the backend session token in the OS keyring.
package credentials

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

const (
	serviceName = "smokefree"
	defaultUser = "session"
)

// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
var ErrKeyringUnavailable = errors.New("OS keyring is not available")

// Store implements ports.TokenStore on top of the OS keyring.
type Store struct {
	user string
}

// New creates a token store for the default account.
func New() *Store {
	return &Store{user: defaultUser}
}

// Get returns the stored token or domain.ErrNotLoggedIn.
func (s *Store) Get() (string, error) {
	tok, err := keyring.Get(serviceName, s.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", domain.ErrNotLoggedIn
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return tok, nil
}

// Set stores the token.
func (s *Store) Set(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(serviceName, s.user, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Delete removes the token. Deleting a missing token is not an error.
func (s *Store) Delete() error {
	err := keyring.Delete(serviceName, s.user)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
