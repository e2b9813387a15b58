// Package httpapi serves the recovery state as local JSON endpoints plus
// Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xvierd/smokefree-cli/internal/domain"
	"github.com/xvierd/smokefree-cli/internal/logger"
	"github.com/xvierd/smokefree-cli/internal/metrics"
	"github.com/xvierd/smokefree-cli/internal/ports"
)

// Server is the local HTTP API.
type Server struct {
	state  ports.StateProvider
	router *mux.Router
	srv    *http.Server
}

// New builds the server and its routes. Nothing listens until Start.
func New(addr string, state ports.StateProvider) *Server {
	s := &Server{state: state}
	s.router = s.routes()
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Not a subrouter: a subrouter answers a method mismatch with 404.
	r.HandleFunc("/api/dashboard", s.handleDashboard).Methods("GET")
	r.HandleFunc("/api/metrics/{id}", s.handleMetric).Methods("GET")
	r.HandleFunc("/api/milestone", s.handleMilestone).Methods("GET")
	r.HandleFunc("/api/trend", s.handleTrend).Methods("GET")
	r.HandleFunc("/api/predictions", s.handlePredictions).Methods("GET")
	r.HandleFunc("/api/cravings", s.handleCravingsToday).Methods("GET")
	r.HandleFunc("/api/cravings", s.handleLogCraving).Methods("POST")
	r.HandleFunc("/api/chat", s.handleChat).Methods("POST")

	return r
}

// Start listens and serves until ctx is cancelled, then shuts down.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	logger.Info("local API listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down local API: %w", err)
	}
	return <-errCh
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		metrics.RecordHTTPRequestDuration(r.Method, path, strconv.Itoa(rec.status), time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type errorResponse struct {
	Error string `json:"error"`
}

type metricResponse struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
	Route    string  `json:"route"`
}

type milestoneResponse struct {
	ThresholdDays int    `json:"threshold_days"`
	Description   string `json:"description"`
	Countdown     string `json:"countdown"`
}

type savingsResponse struct {
	Currency string  `json:"currency"`
	Daily    float64 `json:"daily"`
	Total    int     `json:"total"`
	Monthly  int     `json:"monthly"`
	Yearly   int     `json:"yearly"`
}

type dashboardResponse struct {
	Name            string            `json:"name,omitempty"`
	QuitInstant     time.Time         `json:"quit_instant"`
	DaysSmokeFree   int               `json:"days_smoke_free"`
	OverallRecovery int               `json:"overall_recovery"`
	Metrics         []metricResponse  `json:"metrics"`
	NextMilestone   milestoneResponse `json:"next_milestone"`
	Savings         savingsResponse   `json:"savings"`
}

type pointResponse struct {
	Day    int     `json:"day"`
	Lung   float64 `json:"lung"`
	Heart  float64 `json:"heart"`
	Energy float64 `json:"energy"`
}

type predictionResponse struct {
	Metric    string  `json:"metric"`
	Label     string  `json:"label"`
	Current   float64 `json:"current"`
	Predicted float64 `json:"predicted"`
	Timeframe string  `json:"timeframe"`
}

type cravingResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Intensity int       `json:"intensity"`
	Trigger   string    `json:"trigger,omitempty"`
	Overcome  bool      `json:"overcome"`
	LoggedAt  time.Time `json:"logged_at"`
}

type cravingsTodayResponse struct {
	Cravings []cravingResponse `json:"cravings"`
	Logged   int               `json:"logged"`
	Overcome int               `json:"overcome"`
}

type logCravingRequest struct {
	Type      string `json:"type"`
	Intensity int    `json:"intensity"`
	Trigger   string `json:"trigger"`
	Overcome  bool   `json:"overcome"`
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Reply    string    `json:"reply"`
	Fallback bool      `json:"fallback"`
	SentAt   time.Time `json:"sent_at"`
}

func toMetric(m domain.RecoveryMetric) metricResponse {
	return metricResponse{
		ID:       string(m.ID),
		Label:    m.Label,
		Progress: round1(m.Progress),
		Status:   m.Status,
		Route:    m.Target.String(),
	}
}

func toMilestone(m domain.Milestone) milestoneResponse {
	return milestoneResponse{
		ThresholdDays: m.ThresholdDays,
		Description:   m.Description,
		Countdown:     m.Countdown,
	}
}

func toCraving(c *domain.Craving) cravingResponse {
	return cravingResponse{
		ID:        c.ID,
		Type:      string(c.Type),
		Intensity: c.Intensity,
		Trigger:   c.Trigger,
		Overcome:  c.Overcome,
		LoggedAt:  c.LoggedAt,
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.state.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := dashboardResponse{
		Name:            d.Name,
		QuitInstant:     d.QuitInstant,
		DaysSmokeFree:   d.Days,
		OverallRecovery: d.Overall,
		Metrics:         make([]metricResponse, 0, len(d.Metrics)),
		NextMilestone:   toMilestone(d.Next),
		Savings: savingsResponse{
			Currency: d.Savings.Currency,
			Daily:    round1(d.Savings.Daily),
			Total:    d.Savings.Total,
			Monthly:  d.Savings.Monthly,
			Yearly:   d.Savings.Yearly,
		},
	}
	for _, m := range d.Metrics {
		resp.Metrics = append(resp.Metrics, toMetric(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMetric(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseMetricID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	d, err := s.state.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	m, ok := d.Metric(id)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrUnknownMetric)
		return
	}
	writeJSON(w, http.StatusOK, toMetric(m))
}

func (s *Server) handleMilestone(w http.ResponseWriter, r *http.Request) {
	d, err := s.state.Dashboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toMilestone(d.Next))
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	points, err := s.state.Trend(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := make([]pointResponse, 0, len(points))
	for _, p := range points {
		resp = append(resp, pointResponse{
			Day:    p.Day,
			Lung:   round1(p.Lung),
			Heart:  round1(p.Heart),
			Energy: round1(p.Energy),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	predictions, err := s.state.Predictions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := make([]predictionResponse, 0, len(predictions))
	for _, p := range predictions {
		resp = append(resp, predictionResponse{
			Metric:    string(p.Metric),
			Label:     p.Label,
			Current:   round1(p.Current),
			Predicted: round1(p.Predicted),
			Timeframe: p.Timeframe,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCravingsToday(w http.ResponseWriter, r *http.Request) {
	cravings, summary, err := s.state.CravingsToday(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	resp := cravingsTodayResponse{
		Cravings: make([]cravingResponse, 0, len(cravings)),
		Logged:   summary.Logged,
		Overcome: summary.Overcome,
	}
	for _, c := range cravings {
		resp.Cravings = append(resp.Cravings, toCraving(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogCraving(w http.ResponseWriter, r *http.Request) {
	var req logCravingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	t, err := domain.ValidateCravingType(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := s.state.LogCraving(r.Context(), t, req.Intensity, req.Trigger, req.Overcome)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidCraving) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCraving(c))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	reply, err := s.state.AskCoach(r.Context(), req.Question)
	switch {
	case errors.Is(err, domain.ErrEmptyQuestion):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, domain.ErrChatBusy):
		writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Reply:    reply.Text,
		Fallback: reply.Fallback,
		SentAt:   reply.SentAt,
	})
}
