// ABOUTME: Tests for the CLI's expired-session handling
// ABOUTME: The expiry notice must show once per transition, across invocations

package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/client"
	"github.com/passi/taskdeck/internal/session"
)

// newExpiredStub returns a server that rejects every request with a
// token-expired envelope, the way the guard does for a stale token.
func newExpiredStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintf(w, `{"success":false,"error":{"code":%q,"message":"token expired"}}`, auth.CodeTokenExpired)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExpiredSession_AcknowledgedAfterNotice(t *testing.T) {
	server := newExpiredStub(t)

	sess, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	require.NoError(t, sess.Login("stale-token"))

	c := client.New(server.URL, sess)
	var notices int
	handler := newExpiredSessionHandler(sess)
	c.OnSessionExpired = func() {
		notices++
		handler()
	}

	_, err = c.ListTasks(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, notices)

	// The handler cleared the persisted state, so the next invocation's
	// startup check must not repeat the notice.
	assert.False(t, sess.Expired(), "acknowledged expiry still reads as expired")
	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.Token())
}

func TestExpiredSession_NoSecondNoticeAcrossInvocations(t *testing.T) {
	server := newExpiredStub(t)

	path := filepath.Join(t.TempDir(), "session.json")
	sess, err := session.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, sess.Login("stale-token"))

	c := client.New(server.URL, sess)
	c.OnSessionExpired = newExpiredSessionHandler(sess)

	_, err = c.ListTasks(context.Background())
	require.Error(t, err)

	// Simulate the next CLI run: reopen the session file and walk the
	// same startup gate main() uses.
	reopened, err := session.NewStore(path)
	require.NoError(t, err)
	assert.False(t, reopened.Expired() && requiresSession("list"),
		"second invocation would repeat the expiry notice")

	// Another rejected request after acknowledgment stays silent too
	var notices int
	c2 := client.New(server.URL, reopened)
	c2.OnSessionExpired = func() { notices++ }
	_, err = c2.ListTasks(context.Background())
	require.Error(t, err)
	assert.Zero(t, notices)
}
