// ABOUTME: Handlers for the ownership-gated task endpoints
// ABOUTME: All handlers read the caller identity from the request context

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/store"
	"github.com/passi/taskdeck/internal/task"
)

// CreateTaskRequest is the JSON request body for POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed,omitempty"`
}

// PatchTaskRequest is the JSON request body for PATCH /tasks/{id}.
// Absent fields are left unchanged.
type PatchTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// TaskResponse is the JSON representation of a task. The owner is implied
// by the authenticated caller and not exposed on the wire.
type TaskResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func taskResponse(t *store.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// writeTaskError maps task service errors onto envelope codes.
// Forbidden deliberately reveals nothing about the task beyond the denial.
func (s *Server) writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, CodeNotFound, "task not found")
	case errors.Is(err, task.ErrForbidden):
		writeError(w, http.StatusForbidden, CodeForbidden, "access denied")
	default:
		s.logger.Error("task operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// handleCreateTask handles POST /tasks.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body")
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "title is required")
		return
	}

	created, err := s.tasks.Create(r.Context(), identity, req.Title, req.Description, req.Completed)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}

	writeSuccess(w, taskResponse(created), "task created")
}

// handleListTasks handles GET /tasks.
// The list is implicitly scoped to the authenticated caller.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	tasks, err := s.tasks.List(r.Context(), identity)
	if err != nil {
		s.writeTaskError(w, err)
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		response = append(response, taskResponse(t))
	}

	writeSuccess(w, response, "")
}

// handleGetTask handles GET /tasks/{id}.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	got, err := s.tasks.Get(r.Context(), identity, r.PathValue("id"))
	if err != nil {
		s.writeTaskError(w, err)
		return
	}

	writeSuccess(w, taskResponse(got), "")
}

// handlePatchTask handles PATCH /tasks/{id}.
func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	var req PatchTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "invalid JSON body")
		return
	}

	if req.Title != nil && *req.Title == "" {
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, "title must not be empty")
		return
	}

	updated, err := s.tasks.Patch(r.Context(), identity, r.PathValue("id"), task.Update{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		s.writeTaskError(w, err)
		return
	}

	writeSuccess(w, taskResponse(updated), "task updated")
}

// handleDeleteTask handles DELETE /tasks/{id}.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	identity := auth.MustFromContext(r.Context())

	if err := s.tasks.Delete(r.Context(), identity, r.PathValue("id")); err != nil {
		s.writeTaskError(w, err)
		return
	}

	writeSuccess(w, nil, "task deleted")
}
