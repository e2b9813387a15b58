package ports

import (
	"context"

	"github.com/xvierd/smokefree-cli/internal/domain"
)

// StreakStats is the remote streak summary.
type StreakStats struct {
	CurrentStreak      int `json:"currentStreak"`
	LongestStreak      int `json:"longestStreak"`
	TotalSmokeFreeDays int `json:"totalSmokeFreeDays"`
}

// HelpTopic is one help-center article.
type HelpTopic struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// RemoteProfile is the account profile held by the backend.
type RemoteProfile struct {
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	QuitDate string `json:"quit_date,omitempty"`
}

// Session is the result of a successful login.
type Session struct {
	UserID int
	Name   string
	Email  string
	Token  string
}

// Coach answers quit-smoking questions.
// This is a driven port (implemented by the remote API adapter).
type Coach interface {
	// Ask sends a question and returns the reply text.
	Ask(ctx context.Context, question string) (string, error)
}

// RemoteAPI is the backend the app syncs with.
// This is a driven port (implemented by adapters).
type RemoteAPI interface {
	Coach

	// Login authenticates and returns the session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Register creates an account.
	Register(ctx context.Context, name, email, password string) error

	// ForgotPassword asks the backend to send a one-time code.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword sets a new password using the one-time code.
	ResetPassword(ctx context.Context, email, otp, newPassword string) error

	// GetProfile fetches the account profile.
	GetProfile(ctx context.Context, userID int) (*RemoteProfile, error)

	// UpdateHabits pushes habit settings.
	UpdateHabits(ctx context.Context, userID int, h domain.Habits) error

	// UpdateQuitPlan pushes the quit date.
	UpdateQuitPlan(ctx context.Context, userID int, quitDate string) error

	// StreakStats fetches the streak summary.
	StreakStats(ctx context.Context, userID int) (*StreakStats, error)

	// HelpTopics fetches the help-center articles.
	HelpTopics(ctx context.Context) ([]HelpTopic, error)

	// SubmitTicket opens a support ticket and returns its id.
	SubmitTicket(ctx context.Context, userID int, subject, message string) (string, error)

	// DeleteAccount removes the remote account.
	DeleteAccount(ctx context.Context, userID int) error
}

// TokenStore keeps the API token outside the database.
// This is a driven port (implemented by adapters).
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}
