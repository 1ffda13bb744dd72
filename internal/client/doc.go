// Package client implements the HTTP client for the taskdeck API.
//
// # Overview
//
// The Client wraps the server's JSON endpoints and handles the response
// envelope, bearer-token attachment, and session lifecycle in one place
// so callers (the CLI) never touch raw HTTP.
//
// # Session handling
//
// Tokens come from a session.Store. Every request with a stored token
// carries it as "Authorization: Bearer <token>". When the server rejects
// the token (MISSING_TOKEN, INVALID_TOKEN, or TOKEN_EXPIRED), the client
// purges the stored token and fires OnSessionExpired exactly once per
// login, even when several in-flight requests fail together. Other error
// codes, including INVALID_CREDENTIALS from a failed login, never touch
// the session.
//
// # Errors
//
// Server-reported failures come back as *APIError carrying the HTTP
// status and the envelope's structured code. Branch on Code, never on
// Message.
//
// # Usage
//
//	sess, _ := session.NewStore(sessionPath)
//	c := client.New("http://localhost:8080", sess)
//	c.OnSessionExpired = func() { fmt.Println("session expired, log in again") }
//	tasks, err := c.ListTasks(ctx)
package client
