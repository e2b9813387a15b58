package ports

import (
	"context"

	"github.com/xvierd/smokefree-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// StateProvider exposes the app state to the MCP server and local HTTP API.
// This is a driven port (implemented by services layer).
type StateProvider interface {
	// Dashboard returns the recovery dashboard for now.
	Dashboard(ctx context.Context) (*domain.Dashboard, error)

	// Trend returns the recovery chart series.
	Trend(ctx context.Context) ([]domain.DayPoint, error)

	// Predictions returns the projected health values.
	Predictions(ctx context.Context) ([]domain.Prediction, error)

	// CravingsToday returns today's cravings and their summary.
	CravingsToday(ctx context.Context) ([]*domain.Craving, domain.CravingSummary, error)

	// LogCraving records a craving.
	LogCraving(ctx context.Context, t domain.CravingType, intensity int, trigger string, overcome bool) (*domain.Craving, error)

	// AskCoach sends a question to the AI coach.
	AskCoach(ctx context.Context, question string) (*domain.ChatMessage, error)
}
