package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID int, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
		"iat":     time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

type memTokens struct{ token string }

func (m *memTokens) Get() (string, error) {
	if m.token == "" {
		return "", domain.ErrNotLoggedIn
	}
	return m.token, nil
}

func (m *memTokens) Set(token string) error {
	m.token = token
	return nil
}

func (m *memTokens) Delete() error {
	m.token = ""
	return nil
}

// fakeBackend mimics the PHP endpoints.
type fakeBackend struct {
	t        *testing.T
	lastBody map[string]interface{}
	aiDown   bool
}

func (b *fakeBackend) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.Header.Get("Authorization"), " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, `{"status":false,"message":"missing token"}`, http.StatusUnauthorized)
			return
		}
		_, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(testSecret), nil
		})
		if err != nil {
			http.Error(w, `{"status":false,"message":"bad token"}`, http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (b *fakeBackend) decode(r *http.Request) {
	b.lastBody = map[string]interface{}{}
	_ = json.NewDecoder(r.Body).Decode(&b.lastBody)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/login.php", func(w http.ResponseWriter, r *http.Request) {
		b.decode(r)
		if b.lastBody["password"] != "secret" {
			writeJSON(w, map[string]interface{}{"status": false, "message": "Invalid credentials"})
			return
		}
		writeJSON(w, map[string]interface{}{
			"status": true,
			"token":  signToken(b.t, 7, time.Now().Add(time.Hour)),
			"user":   map[string]interface{}{"user_id": 7, "name": "Asha", "email": "asha@example.com"},
		})
	}).Methods("POST")
	r.HandleFunc("/register.php", func(w http.ResponseWriter, r *http.Request) {
		b.decode(r)
		writeJSON(w, map[string]interface{}{"status": true, "message": "Registered"})
	}).Methods("POST")
	r.HandleFunc("/send_otp.php", func(w http.ResponseWriter, r *http.Request) {
		b.decode(r)
		writeJSON(w, map[string]interface{}{"status": true})
	}).Methods("POST")
	r.HandleFunc("/get_profile.php", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"status": true,
			"data":   map[string]interface{}{"user_id": 7, "name": "Asha", "quit_date": "2024-01-01T00:00:00Z"},
		})
	})).Methods("GET")
	r.HandleFunc("/update_habit_settings.php", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.decode(r)
		writeJSON(w, map[string]interface{}{"status": true})
	})).Methods("POST")
	r.HandleFunc("/get_streak_stats.php", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"status": true, "currentStreak": 12, "longestStreak": 30, "totalSmokeFreeDays": 45})
	})).Methods("POST")
	r.HandleFunc("/get_help_support.php", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"status": true,
			"data":   []map[string]interface{}{{"id": 1, "question": "How?", "answer": "Like this.", "category": "General"}},
		})
	}).Methods("GET")
	r.HandleFunc("/submit_support_ticket.php", b.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		b.decode(r)
		writeJSON(w, map[string]interface{}{"status": true, "ticket_id": "T-42"})
	})).Methods("POST")
	r.HandleFunc("/quit_smoking_ai.php", func(w http.ResponseWriter, r *http.Request) {
		if b.aiDown {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		b.decode(r)
		writeJSON(w, map[string]interface{}{"success": true, "reply": "Cravings pass in minutes."})
	}).Methods("POST")
	return r
}

func newTestClient(t *testing.T) (*Client, *fakeBackend, *memTokens) {
	t.Helper()
	backend := &fakeBackend{t: t}
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)
	tokens := &memTokens{}
	return New(srv.URL+"/", time.Second, tokens), backend, tokens
}

func TestClient_Login(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()

	sess, err := c.Login(ctx, "asha@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, sess.UserID)
	assert.Equal(t, "Asha", sess.Name)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, "asha@example.com", backend.lastBody["email"])

	_, err = c.Login(ctx, "asha@example.com", "wrong")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClient_AuthenticatedCalls(t *testing.T) {
	c, backend, tokens := newTestClient(t)
	ctx := context.Background()

	_, err := c.StreakStats(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)

	tokens.token = signToken(t, 7, time.Now().Add(time.Hour))

	stats, err := c.StreakStats(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.CurrentStreak)
	assert.Equal(t, 30, stats.LongestStreak)
	assert.Equal(t, 45, stats.TotalSmokeFreeDays)

	profile, err := c.GetProfile(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "2024-01-01T00:00:00Z", profile.QuitDate)

	h := domain.Habits{CigarettesPerDay: 12, CostPerPack: 8, CigarettesPerPack: 20, Currency: "$"}
	require.NoError(t, c.UpdateHabits(ctx, 7, h))
	assert.Equal(t, float64(12), backend.lastBody["cigarettes_per_day"])
	assert.Equal(t, "$", backend.lastBody["currency"])

	id, err := c.SubmitTicket(ctx, 7, "Bug", "chart empty")
	require.NoError(t, err)
	assert.Equal(t, "T-42", id)
}

func TestClient_ExpiredToken(t *testing.T) {
	c, _, tokens := newTestClient(t)
	tokens.token = signToken(t, 7, time.Now().Add(-time.Minute))

	_, err := c.StreakStats(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
}

func TestClient_RejectedToken(t *testing.T) {
	c, _, tokens := newTestClient(t)
	tokens.token = "not-a-jwt"

	_, err := c.StreakStats(context.Background(), 7)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestClient_AskAndHelp(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()

	reply, err := c.Ask(ctx, "How long do cravings last?")
	require.NoError(t, err)
	assert.Equal(t, "Cravings pass in minutes.", reply)
	assert.Equal(t, "How long do cravings last?", backend.lastBody["question"])

	topics, err := c.HelpTopics(ctx)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "General", topics[0].Category)

	backend.aiDown = true
	_, err = c.Ask(ctx, "hello?")
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestClient_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond, nil)
	_, err := c.Ask(context.Background(), "hi")
	assert.Error(t, err)
}

func TestClient_RegisterAndForgot(t *testing.T) {
	c, backend, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "Asha", "asha@example.com", "secret"))
	assert.Equal(t, "Asha", backend.lastBody["name"])

	require.NoError(t, c.ForgotPassword(ctx, "asha@example.com"))
	assert.Equal(t, "asha@example.com", backend.lastBody["email"])
}
