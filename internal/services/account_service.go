package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// AccountService handles the remote account: login, sync and support.
type AccountService struct {
	api      ports.RemoteAPI
	tokens   ports.TokenStore
	profiles *ProfileService
	recovery *RecoveryService
}

// NewAccountService creates an account service.
func NewAccountService(api ports.RemoteAPI, tokens ports.TokenStore, profiles *ProfileService, recovery *RecoveryService) *AccountService {
	return &AccountService{api: api, tokens: tokens, profiles: profiles, recovery: recovery}
}

// Login authenticates, stores the token and the account identity.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(sess.Token); err != nil {
		return nil, err
	}
	if err := s.profiles.SetIdentity(ctx, sess.UserID, sess.Name, sess.Email); err != nil {
		return nil, err
	}
	logger.Info("logged in", "user_id", sess.UserID)
	return sess, nil
}

// Register creates a remote account.
func (s *AccountService) Register(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || len(password) < 6 {
		return errors.New("name, email and a password of at least 6 characters are required")
	}
	return s.api.Register(ctx, name, email, password)
}

// ForgotPassword requests a password reset code.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	return s.api.ForgotPassword(ctx, strings.TrimSpace(email))
}

// ResetPassword sets a new password with the emailed code.
func (s *AccountService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if strings.TrimSpace(otp) == "" || len(newPassword) < 6 {
		return errors.New("a code and a password of at least 6 characters are required")
	}
	return s.api.ResetPassword(ctx, strings.TrimSpace(email), strings.TrimSpace(otp), newPassword)
}

// Logout forgets the token and account identity.
func (s *AccountService) Logout(ctx context.Context) error {
	if err := s.tokens.Delete(); err != nil {
		return err
	}
	return s.profiles.ClearIdentity(ctx)
}

// LoggedIn reports whether a token is stored.
func (s *AccountService) LoggedIn() bool {
	_, err := s.tokens.Get()
	return err == nil
}

func (s *AccountService) userID(ctx context.Context) (int, error) {
	if !s.LoggedIn() {
		return 0, domain.ErrNotLoggedIn
	}
	p, err := s.profiles.Load(ctx)
	if err != nil {
		return 0, err
	}
	if p.UserID == 0 {
		return 0, domain.ErrNotLoggedIn
	}
	return p.UserID, nil
}

// Sync pushes the local habits and quit date to the backend.
func (s *AccountService) Sync(ctx context.Context) error {
	id, err := s.userID(ctx)
	if err != nil {
		return err
	}
	p, err := s.profiles.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.api.UpdateHabits(ctx, id, p.Habits); err != nil {
		return fmt.Errorf("failed to sync habits: %w", err)
	}
	if p.HasQuitDate() {
		quit := domain.FormatQuitInstant(p.QuitInstant(s.recovery.Now()))
		if err := s.api.UpdateQuitPlan(ctx, id, quit); err != nil {
			return fmt.Errorf("failed to sync quit plan: %w", err)
		}
	}
	return nil
}

// Pull copies the remote profile into the local store.
func (s *AccountService) Pull(ctx context.Context) (*ports.RemoteProfile, error) {
	id, err := s.userID(ctx)
	if err != nil {
		return nil, err
	}
	rp, err := s.api.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.SetIdentity(ctx, rp.UserID, rp.Name, rp.Email); err != nil {
		return nil, err
	}
	if rp.QuitDate != "" {
		now := s.recovery.Now()
		if err := s.recovery.SetQuitDate(ctx, domain.ResolveQuitInstant(rp.QuitDate, now)); err != nil {
			return nil, err
		}
	}
	return rp, nil
}

// Streak returns the streak summary. Without an account the local elapsed
// days stand in for all three figures. The bool reports whether the figures
// came from the backend.
func (s *AccountService) Streak(ctx context.Context) (ports.StreakStats, bool, error) {
	if id, err := s.userID(ctx); err == nil {
		stats, err := s.api.StreakStats(ctx, id)
		if err == nil {
			return *stats, true, nil
		}
		logger.Warn("remote streak unavailable", "err", err)
	}
	days, err := s.recovery.Days(ctx)
	if err != nil {
		return ports.StreakStats{}, false, err
	}
	return ports.StreakStats{CurrentStreak: days, LongestStreak: days, TotalSmokeFreeDays: days}, false, nil
}

// SubmitTicket opens a support ticket.
func (s *AccountService) SubmitTicket(ctx context.Context, subject, message string) (string, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(message) == "" {
		return "", errors.New("subject and message are required")
	}
	id, err := s.userID(ctx)
	if err != nil {
		return "", err
	}
	return s.api.SubmitTicket(ctx, id, subject, message)
}

// DeleteAccount removes the remote account and logs out.
func (s *AccountService) DeleteAccount(ctx context.Context) error {
	id, err := s.userID(ctx)
	if err != nil {
		return err
	}
	if err := s.api.DeleteAccount(ctx, id); err != nil {
		return err
	}
	return s.Logout(ctx)
}
