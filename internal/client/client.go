// ABOUTME: HTTP client for the taskdeck API with persisted session handling
// ABOUTME: Attaches bearer tokens and purges the session on auth rejections

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/passi/taskdeck/internal/api"
	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/session"
)

const defaultTimeout = 30 * time.Second

// APIError is a structured error response from the server. Callers branch
// on Code; Message is display-only.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %s: %s", e.Code, e.Message)
}

// Client talks to a taskdeck server. Requests carry the bearer token from
// the session store when one is present. When the server rejects a token
// the session is purged and OnSessionExpired fires, at most once per
// login, even across concurrent requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store

	// OnSessionExpired is called when a request discovers the stored
	// token is no longer accepted. May be nil.
	OnSessionExpired func()
}

// New creates a client for the server at baseURL using the given session
// store for token persistence.
func New(baseURL string, sess *session.Store) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    sess,
	}
}

// isAuthRejection reports whether the error code means the stored token
// was rejected. INVALID_CREDENTIALS is deliberately excluded: a failed
// re-login must not purge an existing valid session.
func isAuthRejection(code string) bool {
	switch code {
	case auth.CodeMissingToken, auth.CodeInvalidToken, auth.CodeTokenExpired:
		return true
	}
	return false
}

// do sends a JSON request and decodes the response envelope. On success
// the data payload is unmarshaled into out when out is non-nil. On an
// error envelope it returns an *APIError; auth rejections additionally
// purge the session.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
		Error   *api.ErrorBody  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if !envelope.Success {
		apiErr := &APIError{Status: resp.StatusCode, Code: api.CodeInternal, Message: "unknown error"}
		if envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		if isAuthRejection(apiErr.Code) {
			transition, purgeErr := c.session.HandleUnauthorized()
			if purgeErr != nil {
				return fmt.Errorf("purging session: %w", purgeErr)
			}
			if transition && c.OnSessionExpired != nil {
				c.OnSessionExpired()
			}
		}
		return apiErr
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("parsing response data: %w", err)
		}
	}
	return nil
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	req := api.RegisterRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Login exchanges credentials for a token and stores it in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	req := api.LoginRequest{Email: email, Password: password}
	var resp api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return err
	}
	if err := c.session.Login(resp.AccessToken); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Logout discards the stored session. The server keeps no session state,
// so this is purely local.
func (c *Client) Logout() error {
	return c.session.Logout()
}

// ListTasks returns the caller's tasks.
func (c *Client) ListTasks(ctx context.Context) ([]api.TaskResponse, error) {
	var tasks []api.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask creates a task owned by the caller.
func (c *Client) CreateTask(ctx context.Context, title, description string, completed bool) (*api.TaskResponse, error) {
	req := api.CreateTaskRequest{Title: title, Description: description, Completed: completed}
	var created api.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*api.TaskResponse, error) {
	var got api.TaskResponse
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &got); err != nil {
		return nil, err
	}
	return &got, nil
}

// UpdateTask applies a partial update to a task. Nil fields are left
// unchanged.
func (c *Client) UpdateTask(ctx context.Context, id string, update api.PatchTaskRequest) (*api.TaskResponse, error) {
	var updated api.TaskResponse
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask deletes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

// Me returns the caller's profile.
func (c *Client) Me(ctx context.Context) (*api.ProfileResponse, error) {
	var profile api.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe changes the caller's display name.
func (c *Client) UpdateMe(ctx context.Context, name string) (*api.ProfileResponse, error) {
	req := api.UpdateProfileRequest{Name: &name}
	var profile api.ProfileResponse
	if err := c.do(ctx, http.MethodPatch, "/users/me", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
