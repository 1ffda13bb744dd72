// ABOUTME: Tests for SQLite store implementation
// ABOUTME: Covers account CRUD, email uniqueness, and task CRUD/scoping

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}

	return s
}

func testAccount(id, email string) *Account {
	now := time.Now().UTC().Truncate(time.Second)
	return &Account{
		ID:           id,
		Email:        email,
		DisplayName:  "Test Account",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func testTask(id, ownerID, title string) *Task {
	now := time.Now().UTC().Truncate(time.Second)
	return &Task{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	// Verify the database file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestNewSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestCreateAndGetAccount(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	account := testAccount("acct-123", "jane@x.com")

	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	got, err := store.GetAccount(ctx, "acct-123")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}

	if got.ID != account.ID {
		t.Errorf("ID mismatch: got %q, want %q", got.ID, account.ID)
	}
	if got.Email != account.Email {
		t.Errorf("Email mismatch: got %q, want %q", got.Email, account.Email)
	}
	if got.DisplayName != account.DisplayName {
		t.Errorf("DisplayName mismatch: got %q, want %q", got.DisplayName, account.DisplayName)
	}
	if got.PasswordHash != account.PasswordHash {
		t.Errorf("PasswordHash mismatch: got %q, want %q", got.PasswordHash, account.PasswordHash)
	}
}

func TestCreateAccount_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()

	if err := store.CreateAccount(ctx, testAccount("acct-1", "jane@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	err := store.CreateAccount(ctx, testAccount("acct-2", "jane@x.com"))
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("CreateAccount error = %v, want ErrDuplicateEmail", err)
	}

	// The first account must still be the one on record
	got, err := store.GetAccountByEmail(ctx, "jane@x.com")
	if err != nil {
		t.Fatalf("GetAccountByEmail failed: %v", err)
	}
	if got.ID != "acct-1" {
		t.Errorf("account ID = %q, want %q", got.ID, "acct-1")
	}
}

func TestGetAccountByEmail_CaseSensitive(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()

	if err := store.CreateAccount(ctx, testAccount("acct-1", "Jane@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	if _, err := store.GetAccountByEmail(ctx, "jane@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAccountByEmail with different case error = %v, want ErrNotFound", err)
	}

	if _, err := store.GetAccountByEmail(ctx, "Jane@x.com"); err != nil {
		t.Errorf("GetAccountByEmail with exact case failed: %v", err)
	}
}

func TestGetAccount_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()

	if _, err := store.GetAccount(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAccount error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetAccountByEmail(ctx, "missing@x.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAccountByEmail error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAccount(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	account := testAccount("acct-1", "jane@x.com")

	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	account.DisplayName = "Jane Updated"
	account.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	if err := store.UpdateAccount(ctx, account); err != nil {
		t.Fatalf("UpdateAccount failed: %v", err)
	}

	got, err := store.GetAccount(ctx, "acct-1")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if got.DisplayName != "Jane Updated" {
		t.Errorf("DisplayName = %q, want %q", got.DisplayName, "Jane Updated")
	}
}

func TestUpdateAccount_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	err := store.UpdateAccount(context.Background(), testAccount("missing", "nobody@x.com"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateAccount error = %v, want ErrNotFound", err)
	}
}

func TestCreateAndGetTask(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateAccount(ctx, testAccount("acct-1", "jane@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	task := testTask("task-1", "acct-1", "Buy milk")
	task.Description = "Semi-skimmed"
	task.Completed = true

	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := store.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	if got.OwnerID != "acct-1" {
		t.Errorf("OwnerID = %q, want %q", got.OwnerID, "acct-1")
	}
	if got.Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", got.Title, "Buy milk")
	}
	if got.Description != "Semi-skimmed" {
		t.Errorf("Description = %q, want %q", got.Description, "Semi-skimmed")
	}
	if !got.Completed {
		t.Error("Completed = false, want true")
	}
}

func TestGetTask_Idempotent(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateAccount(ctx, testAccount("acct-1", "jane@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := store.CreateTask(ctx, testTask("task-1", "acct-1", "Buy milk")); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	first, err := store.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	second, err := store.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}

	if *first != *second {
		t.Errorf("repeated reads differ: %+v vs %+v", first, second)
	}
}

func TestListTasks_ScopedToOwner(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateAccount(ctx, testAccount("acct-a", "a@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := store.CreateAccount(ctx, testAccount("acct-b", "b@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		task := testTask(fmt.Sprintf("task-a-%d", i), "acct-a", fmt.Sprintf("Task %d", i))
		if err := store.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	if err := store.CreateTask(ctx, testTask("task-b-1", "acct-b", "Other task")); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	tasks, err := store.ListTasks(ctx, "acct-a")
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("ListTasks returned %d tasks, want 3", len(tasks))
	}
	for _, task := range tasks {
		if task.OwnerID != "acct-a" {
			t.Errorf("task %q has owner %q, want acct-a", task.ID, task.OwnerID)
		}
	}
}

func TestListTasks_EmptyForNewAccount(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	tasks, err := store.ListTasks(context.Background(), "acct-empty")
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("ListTasks returned %d tasks, want 0", len(tasks))
	}
	if tasks == nil {
		t.Error("ListTasks returned nil, want empty slice")
	}
}

func TestUpdateTask_PreservesOwner(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateAccount(ctx, testAccount("acct-1", "jane@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := store.CreateTask(ctx, testTask("task-1", "acct-1", "Buy milk")); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	update := testTask("task-1", "acct-2", "Buy oat milk")
	update.Completed = true
	if err := store.UpdateTask(ctx, update); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got, err := store.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != "Buy oat milk" {
		t.Errorf("Title = %q, want %q", got.Title, "Buy oat milk")
	}
	if !got.Completed {
		t.Error("Completed = false, want true")
	}
	// The update statement never touches owner_id
	if got.OwnerID != "acct-1" {
		t.Errorf("OwnerID = %q, want %q (owner must never change)", got.OwnerID, "acct-1")
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	err := store.UpdateTask(context.Background(), testTask("missing", "acct-1", "Nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTask error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	ctx := context.Background()
	if err := store.CreateAccount(ctx, testAccount("acct-1", "jane@x.com")); err != nil {
		t.Fatalf("CreateAccount failed: %v", err)
	}
	if err := store.CreateTask(ctx, testTask("task-1", "acct-1", "Buy milk")); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if err := store.DeleteTask(ctx, "task-1"); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	if _, err := store.GetTask(ctx, "task-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTask after delete error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	err := store.DeleteTask(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteTask error = %v, want ErrNotFound", err)
	}
}
