// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

const timestampLayout = "2006-01-02T15:04:05"

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.StateProvider
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.StateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
	}

	s.server = server.NewMCPServer(
		"smokefree",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

func cravingTypeNames() []string {
	names := make([]string, 0, len(domain.ValidCravingTypes))
	for _, t := range domain.ValidCravingTypes {
		names = append(names, string(t))
	}
	return names
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_dashboard",
			mcp.WithDescription("Get smoke-free days, overall recovery, per-metric progress, next milestone and savings"),
		),
		s.handleGetDashboard,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_next_milestone",
			mcp.WithDescription("Get the next health milestone and its countdown"),
		),
		s.handleGetNextMilestone,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_trend",
			mcp.WithDescription("Get the illustrative recovery chart series (up to 30 days)"),
		),
		s.handleGetTrend,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_predictions",
			mcp.WithDescription("Get current and projected heart, lung and energy values"),
		),
		s.handleGetPredictions,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_cravings_today",
			mcp.WithDescription("List today's cravings and how many were overcome"),
		),
		s.handleGetCravingsToday,
	)

	logCravingTool := mcp.NewTool(
		"log_craving",
		mcp.WithDescription("Log a craving to smoke"),
		mcp.WithString(
			"type",
			mcp.Required(),
			mcp.Description("What drove the craving"),
			mcp.Enum(cravingTypeNames()...),
		),
		mcp.WithNumber(
			"intensity",
			mcp.Required(),
			mcp.Description("Intensity from 1 (mild) to 10 (overwhelming)"),
		),
		mcp.WithString(
			"trigger",
			mcp.Description("Optional trigger such as coffee, alcohol, stress"),
		),
		mcp.WithBoolean(
			"overcome",
			mcp.Description("Whether the craving passed without smoking"),
		),
	)
	s.server.AddTool(logCravingTool, s.handleLogCraving)

	askCoachTool := mcp.NewTool(
		"ask_coach",
		mcp.WithDescription("Ask the quit-smoking coach a question"),
		mcp.WithString(
			"question",
			mcp.Required(),
			mcp.Description("The question to ask"),
		),
	)
	s.server.AddTool(askCoachTool, s.handleAskCoach)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func milestoneMap(m domain.Milestone) map[string]interface{} {
	return map[string]interface{}{
		"threshold_days": m.ThresholdDays,
		"description":    m.Description,
		"countdown":      m.Countdown,
	}
}

func cravingMap(c *domain.Craving) map[string]interface{} {
	return map[string]interface{}{
		"id":        c.ID,
		"type":      string(c.Type),
		"intensity": c.Intensity,
		"trigger":   c.Trigger,
		"note":      c.Note,
		"overcome":  c.Overcome,
		"logged_at": c.LoggedAt.Format(timestampLayout),
	}
}

// handleGetDashboard handles the get_dashboard tool.
func (s *Server) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.stateProvider.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard: %w", err)
	}

	metrics := make([]map[string]interface{}, 0, len(d.Metrics))
	for _, m := range d.Metrics {
		metrics = append(metrics, map[string]interface{}{
			"id":       string(m.ID),
			"label":    m.Label,
			"progress": round1(m.Progress),
			"status":   m.Status,
			"route":    m.Target.String(),
		})
	}

	result := map[string]interface{}{
		"name":             d.Name,
		"quit_instant":     d.QuitInstant.Format(timestampLayout),
		"days_smoke_free":  d.Days,
		"overall_recovery": d.Overall,
		"metrics":          metrics,
		"next_milestone":   milestoneMap(d.Next),
		"savings": map[string]interface{}{
			"currency": d.Savings.Currency,
			"daily":    round1(d.Savings.Daily),
			"total":    d.Savings.Total,
			"monthly":  d.Savings.Monthly,
			"yearly":   d.Savings.Yearly,
		},
	}

	return jsonResult(result)
}

// handleGetNextMilestone handles the get_next_milestone tool.
func (s *Server) handleGetNextMilestone(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := s.stateProvider.Dashboard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard: %w", err)
	}

	result := milestoneMap(d.Next)
	result["days_smoke_free"] = d.Days
	return jsonResult(result)
}

// handleGetTrend handles the get_trend tool.
func (s *Server) handleGetTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	points, err := s.stateProvider.Trend(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trend: %w", err)
	}

	series := make([]map[string]interface{}, 0, len(points))
	for _, p := range points {
		series = append(series, map[string]interface{}{
			"day":    p.Day,
			"lung":   round1(p.Lung),
			"heart":  round1(p.Heart),
			"energy": round1(p.Energy),
		})
	}

	return jsonResult(map[string]interface{}{
		"points":      series,
		"total_count": len(series),
		"note":        "illustrative values, not measurements",
	})
}

// handleGetPredictions handles the get_predictions tool.
func (s *Server) handleGetPredictions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	predictions, err := s.stateProvider.Predictions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get predictions: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(predictions))
	for _, p := range predictions {
		list = append(list, map[string]interface{}{
			"metric":    string(p.Metric),
			"label":     p.Label,
			"current":   round1(p.Current),
			"predicted": round1(p.Predicted),
			"timeframe": p.Timeframe,
		})
	}

	return jsonResult(map[string]interface{}{"predictions": list})
}

// handleGetCravingsToday handles the get_cravings_today tool.
func (s *Server) handleGetCravingsToday(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cravings, summary, err := s.stateProvider.CravingsToday(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cravings: %w", err)
	}

	list := make([]map[string]interface{}, 0, len(cravings))
	for _, c := range cravings {
		list = append(list, cravingMap(c))
	}

	return jsonResult(map[string]interface{}{
		"cravings": list,
		"logged":   summary.Logged,
		"overcome": summary.Overcome,
		"rate":     round1(summary.Rate() * 100),
	})
}

// handleLogCraving handles the log_craving tool.
func (s *Server) handleLogCraving(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rawType, err := request.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError("type is required: " + err.Error()), nil
	}
	cravingType, err := domain.ValidateCravingType(rawType)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	intensity, err := request.RequireFloat("intensity")
	if err != nil {
		return mcp.NewToolResultError("intensity is required: " + err.Error()), nil
	}
	if intensity != math.Trunc(intensity) {
		return mcp.NewToolResultError("intensity must be a whole number from 1 to 10"), nil
	}

	trigger := request.GetString("trigger", "")
	overcome := request.GetBool("overcome", false)

	craving, err := s.stateProvider.LogCraving(ctx, cravingType, int(intensity), trigger, overcome)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCraving) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, fmt.Errorf("failed to log craving: %w", err)
	}

	result := cravingMap(craving)
	result["message"] = "Craving logged"
	return jsonResult(result)
}

// handleAskCoach handles the ask_coach tool.
func (s *Server) handleAskCoach(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question is required: " + err.Error()), nil
	}

	reply, err := s.stateProvider.AskCoach(ctx, question)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuestion) || errors.Is(err, domain.ErrChatBusy) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, fmt.Errorf("failed to ask coach: %w", err)
	}

	return jsonResult(map[string]interface{}{
		"reply":    reply.Text,
		"fallback": reply.Fallback,
		"sent_at":  reply.SentAt.Format(timestampLayout),
	})
}
