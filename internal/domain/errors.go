// Package domain contains the core entities and calculations for smokefree.
// Everything here is a pure function of its inputs (the current time, the
// stored quit value and an injected configuration) and is independent of any
// external frameworks or infrastructure.
package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidBiometric  = errors.New("invalid biometric reading")
	ErrInvalidCraving    = errors.New("invalid craving")
	ErrCravingNotFound   = errors.New("craving not found")
	ErrUnknownMetric     = errors.New("unknown recovery metric")
	ErrEmptyQuestion     = errors.New("question cannot be empty")
	ErrChatBusy          = errors.New("a chat request is already in flight")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrInvalidHabits     = errors.New("invalid habit settings")
	ErrPreferenceMissing = errors.New("preference not set")
	ErrInvalidQuitDate   = errors.New("invalid quit date")
)
