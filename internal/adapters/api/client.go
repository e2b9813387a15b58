// Package api implements the remote backend client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// ErrSessionExpired is returned when the stored token has expired.
var ErrSessionExpired = fmt.Errorf("%w: session expired, run `smokefree login`", domain.ErrNotLoggedIn)

// Error is a non-success answer from the backend.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.StatusCode)
}

// Client talks to the backend's JSON endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenStore
	now        func() time.Time
}

// Ensure Client implements ports.RemoteAPI.
var _ ports.RemoteAPI = (*Client)(nil)

// New creates a client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, timeout time.Duration, tokens ports.TokenStore) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		now:        time.Now,
	}
}

// envelope carries the fields every response shares.
type envelope struct {
	Status  bool   `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) ok() bool { return e.Status || e.Success }
func (e envelope) message() string { return e.Message }

// statusReader is satisfied by every response type through envelope.
type statusReader interface {
	ok() bool
	message() string
}

type loginResponse struct {
	envelope
	Token string `json:"token"`
	User  struct {
		UserID int    `json:"user_id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
	} `json:"user"`
}

// Login authenticates and returns the session.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "login.php", nil, body, &resp, false); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	sess := &ports.Session{
		UserID: resp.User.UserID,
		Name:   resp.User.Name,
		Email:  resp.User.Email,
		Token:  resp.Token,
	}
	if sess.UserID == 0 {
		if id, ok := TokenUserID(resp.Token); ok {
			sess.UserID = id
		}
	}
	return sess, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	var resp envelope
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "register.php", nil, body, &resp, false)
}

// ForgotPassword asks the backend to email a one-time code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	var resp envelope
	return c.do(ctx, http.MethodPost, "send_otp.php", nil, map[string]string{"email": email}, &resp, false)
}

// ResetPassword sets a new password using the one-time code.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	var resp envelope
	body := map[string]string{"email": email, "otp": otp, "new_password": newPassword}
	return c.do(ctx, http.MethodPost, "reset_password.php", nil, body, &resp, false)
}

type profileResponse struct {
	envelope
	Data ports.RemoteProfile `json:"data"`
}

// GetProfile fetches the account profile.
func (c *Client) GetProfile(ctx context.Context, userID int) (*ports.RemoteProfile, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "get_profile.php", userQuery(userID), nil, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateHabits pushes the habit settings.
func (c *Client) UpdateHabits(ctx context.Context, userID int, h domain.Habits) error {
	var resp envelope
	body := map[string]interface{}{
		"user_id":             userID,
		"cigarettes_per_day":  h.CigarettesPerDay,
		"cost_per_pack":       h.CostPerPack,
		"cigarettes_per_pack": h.CigarettesPerPack,
		"currency":            h.Currency,
	}
	return c.do(ctx, http.MethodPost, "update_habit_settings.php", nil, body, &resp, true)
}

// UpdateQuitPlan pushes the quit date.
func (c *Client) UpdateQuitPlan(ctx context.Context, userID int, quitDate string) error {
	var resp envelope
	body := map[string]interface{}{
		"user_id":    userID,
		"quit_date":  quitDate,
		"milestones": []interface{}{},
	}
	return c.do(ctx, http.MethodPost, "update_quit_plan.php", nil, body, &resp, true)
}

type streakResponse struct {
	envelope
	ports.StreakStats
}

// StreakStats fetches the streak summary.
func (c *Client) StreakStats(ctx context.Context, userID int) (*ports.StreakStats, error) {
	var resp streakResponse
	if err := c.do(ctx, http.MethodPost, "get_streak_stats.php", nil, map[string]int{"user_id": userID}, &resp, true); err != nil {
		return nil, err
	}
	return &resp.StreakStats, nil
}

type helpResponse struct {
	envelope
	Data []ports.HelpTopic `json:"data"`
}

// HelpTopics fetches the help-center articles.
func (c *Client) HelpTopics(ctx context.Context) ([]ports.HelpTopic, error) {
	var resp helpResponse
	if err := c.do(ctx, http.MethodGet, "get_help_support.php", nil, nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type ticketResponse struct {
	envelope
	TicketID string `json:"ticket_id"`
}

// SubmitTicket opens a support ticket.
func (c *Client) SubmitTicket(ctx context.Context, userID int, subject, message string) (string, error) {
	var resp ticketResponse
	body := map[string]interface{}{"user_id": userID, "subject": subject, "message": message}
	if err := c.do(ctx, http.MethodPost, "submit_support_ticket.php", nil, body, &resp, true); err != nil {
		return "", err
	}
	return resp.TicketID, nil
}

// DeleteAccount removes the remote account.
func (c *Client) DeleteAccount(ctx context.Context, userID int) error {
	var resp envelope
	return c.do(ctx, http.MethodPost, "delete_account.php", nil, map[string]int{"user_id": userID}, &resp, true)
}

type chatResponse struct {
	envelope
	Reply string `json:"reply"`
}

// Ask sends a question to the AI coach.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	var resp chatResponse
	if err := c.do(ctx, http.MethodPost, "quit_smoking_ai.php", nil, map[string]string{"question": question}, &resp, false); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func userQuery(userID int) url.Values {
	return url.Values{"user_id": {strconv.Itoa(userID)}}
}

// do sends a JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out statusReader, auth bool) error {
	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token, err := c.token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrSessionExpired
	}
	if resp.StatusCode != http.StatusOK {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if !out.ok() {
		return &Error{StatusCode: resp.StatusCode, Message: out.message()}
	}
	return nil
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", domain.ErrNotLoggedIn
	}
	token, err := c.tokens.Get()
	if err != nil {
		return "", err
	}
	if TokenExpired(token, c.now()) {
		return "", ErrSessionExpired
	}
	return token, nil
}
