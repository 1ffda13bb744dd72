// ABOUTME: Handlers for the unauthenticated auth endpoints
// ABOUTME: POST /auth/register and POST /auth/login

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/passi/taskdeck/internal/account"
	"github.com/passi/taskdeck/internal/store"
)

// RegisterRequest is the JSON request body for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the JSON request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the data payload for a successful login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// handleRegister handles POST /auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "name, email, and password are required")
		return
	}

	_, err := s.accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, CodeDuplicateEmail, "email already registered")
			return
		}
		s.logger.Error("registration failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeSuccess(w, nil, "account registered")
}

// handleLogin handles POST /auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "email and password are required")
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password")
			return
		}
		s.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeSuccess(w, LoginResponse{AccessToken: token}, "login successful")
}
