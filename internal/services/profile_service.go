package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// ProfileService reads and writes the user profile held in the preferences store.
type ProfileService struct {
	storage  ports.Storage
	defaults domain.Habits
}

// NewProfileService creates a profile service. defaults fill any habit the
// user has not set.
func NewProfileService(storage ports.Storage, defaults domain.Habits) *ProfileService {
	if defaults.Validate() != nil {
		defaults = domain.DefaultHabits()
	}
	return &ProfileService{storage: storage, defaults: defaults}
}

// Load builds the profile from the stored preferences. Unparseable numbers
// fall back to the configured defaults.
func (s *ProfileService) Load(ctx context.Context) (domain.Profile, error) {
	prefs, err := s.storage.Preferences().All(ctx)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	p := domain.Profile{
		Name:     prefs[ports.PrefName],
		Email:    prefs[ports.PrefEmail],
		QuitDate: prefs[ports.PrefQuitDate],
		Habits:   s.defaults,
	}
	p.UserID = atoiOr(prefs[ports.PrefUserID], 0)
	p.LastCelebrated = atoiOr(prefs[ports.PrefLastCelebrated], 0)
	p.DarkMode = prefs[ports.PrefDarkMode] == "true"

	p.Habits.CigarettesPerDay = atoiOr(prefs[ports.PrefCigarettesPerDay], s.defaults.CigarettesPerDay)
	p.Habits.CigarettesPerPack = atoiOr(prefs[ports.PrefCigarettesPerPack], s.defaults.CigarettesPerPack)
	if v, err := strconv.ParseFloat(prefs[ports.PrefCostPerPack], 64); err == nil {
		p.Habits.CostPerPack = v
	}
	if c := prefs[ports.PrefCurrency]; c != "" {
		p.Habits.Currency = c
	}
	if err := p.Habits.Validate(); err != nil {
		logger.Warn("stored habits invalid, using defaults", "err", err)
		p.Habits = s.defaults
	}

	return p, nil
}

// SetQuitDate stores the quit instant.
func (s *ProfileService) SetQuitDate(ctx context.Context, at time.Time) error {
	return s.storage.Preferences().Set(ctx, ports.PrefQuitDate, domain.FormatQuitInstant(at))
}

// SetHabits validates and stores the habit settings.
func (s *ProfileService) SetHabits(ctx context.Context, h domain.Habits) error {
	if err := h.Validate(); err != nil {
		return err
	}
	values := map[string]string{
		ports.PrefCigarettesPerDay:  strconv.Itoa(h.CigarettesPerDay),
		ports.PrefCostPerPack:       strconv.FormatFloat(h.CostPerPack, 'f', -1, 64),
		ports.PrefCigarettesPerPack: strconv.Itoa(h.CigarettesPerPack),
		ports.PrefCurrency:          h.Currency,
	}
	return s.setAll(ctx, values)
}

// SetIdentity stores the account details returned by login.
func (s *ProfileService) SetIdentity(ctx context.Context, userID int, name, email string) error {
	return s.setAll(ctx, map[string]string{
		ports.PrefUserID: strconv.Itoa(userID),
		ports.PrefName:   name,
		ports.PrefEmail:  email,
	})
}

// ClearIdentity forgets the account details.
func (s *ProfileService) ClearIdentity(ctx context.Context) error {
	for _, key := range []string{ports.PrefUserID, ports.PrefEmail} {
		if err := s.storage.Preferences().Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// SetLastCelebrated records how many milestone bands have been announced.
func (s *ProfileService) SetLastCelebrated(ctx context.Context, n int) error {
	return s.storage.Preferences().Set(ctx, ports.PrefLastCelebrated, strconv.Itoa(n))
}

// SetDarkMode stores the theme preference.
func (s *ProfileService) SetDarkMode(ctx context.Context, on bool) error {
	return s.storage.Preferences().Set(ctx, ports.PrefDarkMode, strconv.FormatBool(on))
}

// Preference returns a single raw preference, or "" when unset.
func (s *ProfileService) Preference(ctx context.Context, key string) (string, error) {
	v, err := s.storage.Preferences().Get(ctx, key)
	if errors.Is(err, domain.ErrPreferenceMissing) {
		return "", nil
	}
	return v, err
}

func (s *ProfileService) setAll(ctx context.Context, values map[string]string) error {
	for k, v := range values {
		if err := s.storage.Preferences().Set(ctx, k, v); err != nil {
			return fmt.Errorf("failed to save %s: %w", k, err)
		}
	}
	return nil
}

func atoiOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
