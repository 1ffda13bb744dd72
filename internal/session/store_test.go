// ABOUTME: Tests for the persisted client session state machine
// ABOUTME: Covers persistence, expiry transitions, and the once-only notice guard

package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return s
}

func TestFreshStore_LoggedOut(t *testing.T) {
	s := newTestStore(t)

	if s.LoggedIn() {
		t.Error("fresh store is logged in")
	}
	if s.Token() != "" {
		t.Errorf("fresh store has token %q", s.Token())
	}
	if s.Expired() {
		t.Error("fresh store reports expired; never-logged-in must be distinct")
	}
}

func TestLogin_PersistsAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if err := s.Login("token-abc"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// A new store over the same file sees the session
	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if reopened.Token() != "token-abc" {
		t.Errorf("Token() = %q, want %q", reopened.Token(), "token-abc")
	}
	if !reopened.LoggedIn() {
		t.Error("LoggedIn() = false after reopen")
	}
}

func TestLogout_ClearsBothTogether(t *testing.T) {
	s := newTestStore(t)

	if err := s.Login("token-abc"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if s.Token() != "" {
		t.Errorf("Token() = %q after logout", s.Token())
	}
	if s.LoggedIn() {
		t.Error("LoggedIn() = true after logout")
	}
	// Deliberate logout must never look like an expired session
	if s.Expired() {
		t.Error("Expired() = true after intentional logout")
	}
}

func TestHandleUnauthorized_Transition(t *testing.T) {
	s := newTestStore(t)

	if err := s.Login("token-abc"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	transition, err := s.HandleUnauthorized()
	if err != nil {
		t.Fatalf("HandleUnauthorized() error = %v", err)
	}
	if !transition {
		t.Error("first HandleUnauthorized() transition = false, want true")
	}

	if s.Token() != "" {
		t.Error("token not purged")
	}
	if !s.Expired() {
		t.Error("Expired() = false after purge of a logged-in session")
	}

	// Repeated unauthorized responses do not re-trigger the notice
	transition, err = s.HandleUnauthorized()
	if err != nil {
		t.Fatalf("HandleUnauthorized() error = %v", err)
	}
	if transition {
		t.Error("second HandleUnauthorized() transition = true, want false")
	}
}

func TestHandleUnauthorized_NeverLoggedIn(t *testing.T) {
	s := newTestStore(t)

	transition, err := s.HandleUnauthorized()
	if err != nil {
		t.Fatalf("HandleUnauthorized() error = %v", err)
	}
	if transition {
		t.Error("HandleUnauthorized() on fresh store transition = true")
	}
	if s.Expired() {
		t.Error("fresh store reports expired after stray unauthorized response")
	}
}

func TestHandleUnauthorized_ConcurrentOnce(t *testing.T) {
	s := newTestStore(t)

	if err := s.Login("token-abc"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	// Three concurrent failing requests race to the same purge; exactly
	// one wins the transition.
	const racers = 3
	var wg sync.WaitGroup
	transitions := make(chan bool, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			transition, err := s.HandleUnauthorized()
			if err != nil {
				t.Errorf("HandleUnauthorized() error = %v", err)
			}
			transitions <- transition
		}()
	}
	wg.Wait()
	close(transitions)

	count := 0
	for transition := range transitions {
		if transition {
			count++
		}
	}
	if count != 1 {
		t.Errorf("%d transitions reported, want exactly 1", count)
	}
}

func TestAcknowledge_ReturnsToFreshState(t *testing.T) {
	s := newTestStore(t)

	if err := s.Login("token-abc"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := s.HandleUnauthorized(); err != nil {
		t.Fatalf("HandleUnauthorized() error = %v", err)
	}
	if err := s.Acknowledge(); err != nil {
		t.Fatalf("Acknowledge() error = %v", err)
	}

	if s.Expired() {
		t.Error("Expired() = true after acknowledge")
	}
	if s.LoggedIn() {
		t.Error("LoggedIn() = true after acknowledge")
	}
}

func TestLogin_ResetsExpiryGuard(t *testing.T) {
	s := newTestStore(t)

	if err := s.Login("token-1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := s.HandleUnauthorized(); err != nil {
		t.Fatalf("HandleUnauthorized() error = %v", err)
	}

	// A fresh login arms the transition again
	if err := s.Login("token-2"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	transition, err := s.HandleUnauthorized()
	if err != nil {
		t.Fatalf("HandleUnauthorized() error = %v", err)
	}
	if !transition {
		t.Error("transition after re-login = false, want true")
	}
}

func TestNewStore_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if s.LoggedIn() || s.Token() != "" {
		t.Error("corrupt session file did not reset to logged out")
	}
}
