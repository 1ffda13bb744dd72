// ABOUTME: Client-side persisted session state with a narrow mutation API
// ABOUTME: Login, Logout, and HandleUnauthorized are the only writers

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// State is the session state persisted between CLI invocations.
// LoggedIn true with an empty Token means the session expired out from
// under the user, which is distinct from never having logged in.
type State struct {
	Token    string `json:"token"`
	LoggedIn bool   `json:"logged_in"`
}

// Store owns the session state. All reads and writes go through its
// methods, so the invariants (atomic clear on logout, one expiry
// transition per purge) hold by construction.
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// NewStore loads the session from the given file path, creating parent
// directories as needed. A missing file is a fresh, logged-out session.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session file: %w", err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt session file is treated as logged out rather than
		// blocking the CLI.
		s.state = State{}
	}

	return s, nil
}

// save persists the current state. Callers must hold s.mu.
func (s *Store) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}

	return nil
}

// Login records a newly issued token and marks the session logged in.
// This also resets the expiry-transition guard.
func (s *Store) Login(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{Token: token, LoggedIn: true}
	return s.save()
}

// Logout clears both the token and the logged-in flag together, under a
// single lock hold and file write, so an intentional logout never reads
// as an expired session.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	return s.save()
}

// HandleUnauthorized purges the persisted token in reaction to an
// unauthorized response, leaving LoggedIn set so the expired state is
// observable. It reports whether this call performed the transition:
// with N concurrent unauthorized responses racing to the same purge,
// exactly one caller sees true, so the expired-session notice is shown
// once.
func (s *Store) HandleUnauthorized() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Token == "" {
		// Already purged, or never logged in
		return false, nil
	}

	transition := s.state.LoggedIn
	s.state.Token = ""
	if err := s.save(); err != nil {
		return transition, err
	}

	return transition, nil
}

// Acknowledge clears the logged-in flag after the user has seen the
// expired-session notice, returning the session to the fresh
// unauthenticated state.
func (s *Store) Acknowledge() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	return s.save()
}

// Token returns the persisted token, or empty if none.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Token
}

// LoggedIn reports whether the session believes it is authenticated.
func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.LoggedIn
}

// Expired reports whether the session was authenticated but its token has
// been purged: the expired-session state, distinct from never-logged-in.
func (s *Store) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.LoggedIn && s.state.Token == ""
}
