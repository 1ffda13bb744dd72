// ABOUTME: Ownership-enforced task operations
// ABOUTME: Every targeted operation re-checks that the caller owns the task

package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/store"
)

// ErrForbidden is returned when the caller is not the owner of the target
// task. It carries no detail about the task beyond the fact that access
// is denied.
var ErrForbidden = errors.New("access denied")

// Update describes a partial task update. Nil fields are left unchanged.
type Update struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Service implements task CRUD gated by ownership checks. The caller
// identity is an explicit parameter on every operation; ownership is a
// pure function of (identity, task) and is never cached between calls.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// NewService creates a task service backed by the given store.
func NewService(st store.Store) *Service {
	return &Service{
		store:  st,
		logger: slog.Default().With("component", "task"),
	}
}

// Create stores a new task owned by the caller. The owner is fixed here
// and never reassigned.
func (s *Service) Create(ctx context.Context, identity *auth.Identity, title, description string, completed bool) (*store.Task, error) {
	now := time.Now().UTC()
	task := &store.Task{
		ID:          uuid.NewString(),
		OwnerID:     identity.Subject,
		Title:       title,
		Description: description,
		Completed:   completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logger.Info("task created", "id", task.ID, "owner", task.OwnerID)
	return task, nil
}

// List returns all tasks owned by the caller. Other accounts' tasks are
// never included.
func (s *Service) List(ctx context.Context, identity *auth.Identity) ([]*store.Task, error) {
	return s.store.ListTasks(ctx, identity.Subject)
}

// Get returns the task with the given ID if the caller owns it.
// Returns store.ErrNotFound for missing tasks and ErrForbidden when the
// task belongs to another account.
func (s *Service) Get(ctx context.Context, identity *auth.Identity, id string) (*store.Task, error) {
	return s.authorize(ctx, identity, id)
}

// Patch applies a partial update to a task the caller owns.
func (s *Service) Patch(ctx context.Context, identity *auth.Identity, id string, update Update) (*store.Task, error) {
	task, err := s.authorize(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.logger.Info("task updated", "id", task.ID)
	return task, nil
}

// Delete removes a task the caller owns.
func (s *Service) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	if _, err := s.authorize(ctx, identity, id); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	s.logger.Info("task deleted", "id", id)
	return nil
}

// authorize loads the task and checks ownership. NotFound is reported
// before Forbidden, so probing a nonexistent ID never reads as a
// permissions problem.
func (s *Service) authorize(ctx context.Context, identity *auth.Identity, id string) (*store.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.OwnerID != identity.Subject {
		return nil, ErrForbidden
	}

	return task, nil
}
