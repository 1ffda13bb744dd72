// ABOUTME: Handlers for the authenticated profile endpoints
// ABOUTME: GET /users/me and PATCH /users/me, scoped to the caller

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/store"
)

// ProfileResponse is the JSON representation of the caller's account.
// The password hash never appears on the wire.
type ProfileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UpdateProfileRequest is the JSON request body for PATCH /users/me.
type UpdateProfileRequest struct {
	Name *string `json:"name,omitempty"`
}

func profileResponse(a *store.Account) ProfileResponse {
	return ProfileResponse{
		ID:        a.ID,
		Name:      a.DisplayName,
		Email:     a.Email,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// handleMe handles GET /users/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	acct, err := s.accounts.Get(r.Context(), identity.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A valid token for a deleted account
			writeError(w, http.StatusNotFound, CodeNotFound, "account not found")
			return
		}
		s.logger.Error("profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeSuccess(w, profileResponse(acct), "")
}

// handleUpdateMe handles PATCH /users/me.
// Only the caller's own account can be updated.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body")
		return
	}

	if req.Name == nil || *req.Name == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "name is required")
		return
	}

	acct, err := s.accounts.UpdateDisplayName(r.Context(), identity.Subject, *req.Name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, CodeNotFound, "account not found")
			return
		}
		s.logger.Error("profile update failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
		return
	}

	writeSuccess(w, profileResponse(acct), "profile updated")
}
