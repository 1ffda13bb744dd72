// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides account/task persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS accounts (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL REFERENCES accounts(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			completed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}

// CreateAccount creates a new account in the database.
// If an account with the same email already exists, it returns ErrDuplicateEmail.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *Account) error {
	query := `
		INSERT INTO accounts (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		account.ID,
		account.Email,
		account.DisplayName,
		account.PasswordHash,
		account.CreatedAt.UTC().Format(time.RFC3339),
		account.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		// Check for UNIQUE constraint violation on email
		if isConstraintViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting account: %w", err)
	}

	s.logger.Debug("created account", "id", account.ID)
	return nil
}

// GetAccount retrieves an account by ID.
// Returns ErrNotFound if the account doesn't exist.
func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = ?
	`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, id))
}

// GetAccountByEmail retrieves an account by its unique email.
// The lookup is case-sensitive, matching the stored value exactly.
// Returns ErrNotFound if no account has that email.
func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = ?
	`
	return s.scanAccount(s.db.QueryRowContext(ctx, query, email))
}

// scanAccount reads a single account row, converting stored timestamps.
func (s *SQLiteStore) scanAccount(row *sql.Row) (*Account, error) {
	var account Account
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&account.ID,
		&account.Email,
		&account.DisplayName,
		&account.PasswordHash,
		&createdAtStr,
		&updatedAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying account: %w", err)
	}

	account.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	account.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &account, nil
}

// UpdateAccount updates an existing account's mutable fields.
// The email and password hash are updatable; the ID never changes.
// Returns ErrNotFound if the account doesn't exist.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, account *Account) error {
	query := `
		UPDATE accounts
		SET email = ?, display_name = ?, password_hash = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		account.Email,
		account.DisplayName,
		account.PasswordHash,
		account.UpdatedAt.UTC().Format(time.RFC3339),
		account.ID,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("updating account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated account", "id", account.ID)
	return nil
}

// CreateTask creates a new task in the database.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (id, owner_id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.OwnerID,
		task.Title,
		task.Description,
		boolToInt(task.Completed),
		task.CreatedAt.UTC().Format(time.RFC3339),
		task.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	s.logger.Debug("created task", "id", task.ID, "owner", task.OwnerID)
	return nil
}

// GetTask retrieves a task by ID.
// Returns ErrNotFound if the task doesn't exist.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`

	var task Task
	var completed int
	var createdAtStr, updatedAtStr string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&completed,
		&createdAtStr,
		&updatedAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}

	task.Completed = completed != 0

	task.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	task.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &task, nil
}

// ListTasks retrieves all tasks owned by the given account,
// ordered by creation time. This uses the idx_tasks_owner index.
func (s *SQLiteStore) ListTasks(ctx context.Context, ownerID string) ([]*Task, error) {
	query := `
		SELECT id, owner_id, title, description, completed, created_at, updated_at
		FROM tasks
		WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*Task, 0)
	for rows.Next() {
		var task Task
		var completed int
		var createdAtStr, updatedAtStr string

		if err := rows.Scan(
			&task.ID,
			&task.OwnerID,
			&task.Title,
			&task.Description,
			&completed,
			&createdAtStr,
			&updatedAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		task.Completed = completed != 0

		task.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}

		task.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}

		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTask updates an existing task's fields.
// The owner_id column is deliberately absent from the statement:
// ownership is fixed at creation.
// Returns ErrNotFound if the task doesn't exist.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		boolToInt(task.Completed),
		task.UpdatedAt.UTC().Format(time.RFC3339),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("updated task", "id", task.ID)
	return nil
}

// DeleteTask removes a task by ID.
// Returns ErrNotFound if the task doesn't exist.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("deleted task", "id", id)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
