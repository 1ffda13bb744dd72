// ABOUTME: Store interface and data types for taskdeck persistence
// ABOUTME: Defines Account, Task structs and the Store interface for database operations

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when trying to create an account with an
// email that is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// Account represents a registered account.
// PasswordHash is a bcrypt digest and never leaves the server process.
type Account struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task represents a single task owned by exactly one account.
// OwnerID is fixed at creation and never reassigned.
type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store defines the persistence operations used by the services.
// Implementations must be safe for concurrent use; each call is
// independently transactional.
type Store interface {
	// Accounts
	CreateAccount(ctx context.Context, account *Account) error
	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpdateAccount(ctx context.Context, account *Account) error

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string) error

	Close() error
}
