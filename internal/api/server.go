// Package api provides the HTTP API for playing the company simulation.
// Every action endpoint loads the stored company, applies one action, saves
// it, and answers with the result and the new state.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/talgya/task-tycoon/internal/company"
	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/engine"
	"github.com/talgya/task-tycoon/internal/report"
)

// maxBodyBytes bounds request bodies, including uploaded state documents.
const maxBodyBytes = 1 << 20

const defaultHistoryDays = 7

// Server serves the company over HTTP.
type Server struct {
	proc    *engine.Processor
	origins []string

	marketLimiter *RateLimiter
	resetLimiter  *RateLimiter
}

// NewServer creates a server for proc. origins are allowed CORS origins in
// addition to the local dev servers.
func NewServer(proc *engine.Processor, origins []string) *Server {
	return &Server{
		proc:          proc,
		origins:       origins,
		marketLimiter: NewRateLimiter(30, time.Minute),
		resetLimiter:  NewRateLimiter(5, time.Minute),
	}
}

// Close stops the rate limiters' background cleanup.
func (s *Server) Close() {
	s.marketLimiter.Stop()
	s.resetLimiter.Stop()
}

// Handler returns the routed handler with CORS and panic recovery.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(recoverMiddleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/task", s.handleTask).Methods(http.MethodPost)
	api.HandleFunc("/day/end", s.handleEndDay).Methods(http.MethodPost)

	api.HandleFunc("/department/{dept}/unlock", s.handleUnlock).Methods(http.MethodPost)
	api.HandleFunc("/department/{dept}/upgrade", s.handleUpgrade).Methods(http.MethodPost)
	api.HandleFunc("/department/{dept}/cost", s.handleDepartmentCost).Methods(http.MethodGet)
	api.HandleFunc("/departments/overview", s.handleDepartments).Methods(http.MethodGet)

	api.HandleFunc("/employee/hire", s.handleHire).Methods(http.MethodPost)
	api.HandleFunc("/employees/hire", s.handleHire).Methods(http.MethodPost)
	api.HandleFunc("/employees", s.handleListEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees", s.handleAddEmployee).Methods(http.MethodPost)
	api.HandleFunc("/employee/market", RateLimitMiddleware(s.marketLimiter, s.handleMarket)).Methods(http.MethodGet)
	api.HandleFunc("/employee/{id}/train", s.handleTrain).Methods(http.MethodPost)
	api.HandleFunc("/employee/{id}/fire", s.handleFire).Methods(http.MethodDelete)
	api.HandleFunc("/employees/overview", s.handleEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", s.handleFire).Methods(http.MethodDelete)

	api.HandleFunc("/dashboard/stats", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/predictions", s.handlePredictions).Methods(http.MethodGet)
	api.HandleFunc("/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/achievements", s.handleAchievements).Methods(http.MethodGet)
	api.HandleFunc("/financial/health", s.handleFinancialHealth).Methods(http.MethodGet)

	api.HandleFunc("/save", s.handleSave).Methods(http.MethodPost)
	api.HandleFunc("/load", s.handleLoad).Methods(http.MethodGet)
	api.HandleFunc("/reset", RateLimitMiddleware(s.resetLimiter, s.handleReset)).Methods(http.MethodPost)

	// Subrouters answer their own misses, so both routers need the handlers.
	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such endpoint", ErrorType: "not_found"})
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", ErrorType: "invalid_input"})
	})
	r.NotFoundHandler, api.NotFoundHandler = notFound, notFound
	r.MethodNotAllowedHandler, api.MethodNotAllowedHandler = notAllowed, notAllowed

	return corsMiddleware(s.origins, r)
}

// corsMiddleware adds CORS headers for allowed frontend origins.
// Localhost dev servers are always allowed.
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:4173": true,
		"http://localhost:3000": true,
	}
	for _, origin := range origins {
		allowedOrigins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware turns a panicking handler into a 500.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				slog.Error("handler panic", "path", r.URL.Path, "panic", v)
				writeJSON(w, http.StatusInternalServerError, errorBody{
					Error:     fmt.Sprint(v),
					ErrorType: "internal",
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) tables() economy.Tables {
	return s.proc.Engine().Tables
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskType string `json:"task_type"`
		Task     string `json:"task"` // older clients
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.TaskType == "" {
		req.TaskType = req.Task
	}

	res, st, err := s.proc.ExecuteTask(r.Context(), req.TaskType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.TaskResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleEndDay(w http.ResponseWriter, r *http.Request) {
	res, st, err := s.proc.EndDay(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.DayResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	res, st, err := s.proc.UnlockDepartment(r.Context(), mux.Vars(r)["dept"])
	s.writeDepartment(w, res, st, err)
}

func (s *Server) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	res, st, err := s.proc.UpgradeDepartment(r.Context(), mux.Vars(r)["dept"])
	s.writeDepartment(w, res, st, err)
}

func (s *Server) writeDepartment(w http.ResponseWriter, res *engine.DepartmentResult, st *company.State, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.DepartmentResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleDepartmentCost(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	name := mux.Vars(r)["dept"]
	q, ok := report.QuoteDepartment(s.tables(), st, name)
	if !ok {
		writeError(w, &engine.ActionError{Kind: engine.ErrInvalidInput, Message: fmt.Sprintf("unknown department %q", name)})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		report.Quote
	}{true, q})
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"departments": report.Departments(s.tables(), st),
	})
}

func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type string `json:"type"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, st, err := s.proc.HireEmployee(r.Context(), req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.HireResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"employees": st.Employees,
	})
}

func (s *Server) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string  `json:"name"`
		Role   string  `json:"role"`
		Salary float64 `json:"salary"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, st, err := s.proc.AddEmployee(r.Context(), req.Name, req.Role, req.Salary)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.AddResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	res, st, err := s.proc.TrainEmployee(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.TrainResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	res, st, err := s.proc.FireEmployee(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		*engine.FireResult
		State *company.State `json:"state"`
	}{true, res, st})
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.proc.Candidates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"candidates": candidates,
	})
}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		report.StaffOverview
	}{true, report.Staff(st)})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		report.Dashboard
	}{true, report.BuildDashboard(s.tables(), st)})
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		report.Forecast
	}{true, report.Predict(s.tables(), st)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	n := defaultHistoryDays
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			n = parsed
		}
	}
	days, err := s.proc.History(r.Context(), n)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(days),
		"history": days,
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"achievements": report.Achievements(st),
	})
}

func (s *Server) handleFinancialHealth(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"financial_health": economy.FinancialHealth(s.tables(), st),
		"daily_costs":      economy.DailyCosts(s.tables(), st),
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, badRequest("read body: %v", err))
		return
	}
	if len(body) == 0 {
		writeError(w, badRequest("a state document is required"))
		return
	}
	doc, err := company.Decode(body)
	if err != nil {
		writeError(w, badRequest("%v", err))
		return
	}
	st, err := s.proc.Replace(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "state saved",
		"state":   st,
	})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.State(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "state loaded",
		"state":   st,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := s.proc.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "state reset",
		"state":   st,
	})
}

type errorBody struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

func badRequest(format string, args ...any) error {
	return &engine.ActionError{Kind: engine.ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// unchanged.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// writeError maps an action error kind to its status. Anything else is a
// server fault and is logged.
func writeError(w http.ResponseWriter, err error) {
	status, kind := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		status, kind = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, engine.ErrInsufficientResource):
		status, kind = http.StatusBadRequest, "insufficient_resource"
	case errors.Is(err, engine.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	default:
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), ErrorType: kind})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Debug("write response", "error", err)
	}
}
