// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu         sync.RWMutex
	accounts   map[string]*Account // keyed by account ID
	emailIndex map[string]string   // keyed by email -> account ID
	tasks      map[string]*Task    // keyed by task ID
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		accounts:   make(map[string]*Account),
		emailIndex: make(map[string]string),
		tasks:      make(map[string]*Task),
	}
}

// CreateAccount stores a new account, enforcing email uniqueness.
func (m *MockStore) CreateAccount(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.emailIndex[account.Email]; exists {
		return ErrDuplicateEmail
	}

	// Make a copy to avoid external modification
	a := *account
	m.accounts[a.ID] = &a
	m.emailIndex[a.Email] = a.ID

	return nil
}

// GetAccount retrieves an account by ID.
func (m *MockStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}

	a := *account
	return &a, nil
}

// GetAccountByEmail retrieves an account by email.
func (m *MockStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emailIndex[email]
	if !ok {
		return nil, ErrNotFound
	}

	a := *m.accounts[id]
	return &a, nil
}

// UpdateAccount replaces a stored account's mutable fields.
func (m *MockStore) UpdateAccount(ctx context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.accounts[account.ID]
	if !ok {
		return ErrNotFound
	}

	if account.Email != existing.Email {
		if _, taken := m.emailIndex[account.Email]; taken {
			return ErrDuplicateEmail
		}
		delete(m.emailIndex, existing.Email)
		m.emailIndex[account.Email] = account.ID
	}

	a := *account
	m.accounts[a.ID] = &a

	return nil
}

// CreateTask stores a new task.
func (m *MockStore) CreateTask(ctx context.Context, task *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := *task
	m.tasks[t.ID] = &t

	return nil
}

// GetTask retrieves a task by ID.
func (m *MockStore) GetTask(ctx context.Context, id string) (*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	task, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}

	t := *task
	return &t, nil
}

// ListTasks returns all tasks owned by the given account, ordered by creation time.
func (m *MockStore) ListTasks(ctx context.Context, ownerID string) ([]*Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tasks := make([]*Task, 0)
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			t := *task
			tasks = append(tasks, &t)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks, nil
}

// UpdateTask replaces a stored task. The owner is preserved from the
// existing record regardless of the value passed in.
func (m *MockStore) UpdateTask(ctx context.Context, task *Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tasks[task.ID]
	if !ok {
		return ErrNotFound
	}

	t := *task
	t.OwnerID = existing.OwnerID
	m.tasks[t.ID] = &t

	return nil
}

// DeleteTask removes a task by ID.
func (m *MockStore) DeleteTask(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}

	delete(m.tasks, id)
	return nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}
