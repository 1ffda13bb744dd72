// ABOUTME: HTTP API server wiring handlers, routes, and the auth guard
// ABOUTME: All task and profile routes sit behind the bearer-token middleware

package api

import (
	"log/slog"
	"net/http"

	"github.com/passi/taskdeck/internal/account"
	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/task"
)

// Server holds the services backing the HTTP API.
type Server struct {
	accounts *account.Service
	tasks    *task.Service
	verifier auth.TokenVerifier
	logger   *slog.Logger
}

// NewServer creates an API server over the given services.
func NewServer(accounts *account.Service, tasks *task.Service, verifier auth.TokenVerifier) *Server {
	return &Server{
		accounts: accounts,
		tasks:    tasks,
		verifier: verifier,
		logger:   slog.Default().With("component", "api"),
	}
}

// RegisterRoutes registers all API routes on the given mux.
// Every task and profile route passes through the auth guard before any
// handler logic runs; the auth endpoints and health probe do not.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Public routes
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	// Protected routes
	guard := auth.Middleware(s.verifier)

	mux.Handle("POST /tasks", guard(http.HandlerFunc(s.handleCreateTask)))
	mux.Handle("GET /tasks", guard(http.HandlerFunc(s.handleListTasks)))
	mux.Handle("GET /tasks/{id}", guard(http.HandlerFunc(s.handleGetTask)))
	mux.Handle("PATCH /tasks/{id}", guard(http.HandlerFunc(s.handlePatchTask)))
	mux.Handle("DELETE /tasks/{id}", guard(http.HandlerFunc(s.handleDeleteTask)))

	mux.Handle("GET /users/me", guard(http.HandlerFunc(s.handleMe)))
	mux.Handle("PATCH /users/me", guard(http.HandlerFunc(s.handleUpdateMe)))
}

// handleHealth is an unauthenticated liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"}, "")
}
