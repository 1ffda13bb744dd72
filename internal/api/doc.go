// Package api exposes the taskdeck HTTP API.
//
// Every endpoint returns the uniform envelope: {success: true, data,
// message} on success, {success: false, error: {code, message}} on
// failure. The code field is the machine-readable discriminant; messages
// are for display only.
//
// Routes:
//
//	POST   /auth/register   create an account (unauthenticated)
//	POST   /auth/login      exchange credentials for a bearer token
//	GET    /healthz         liveness probe
//	POST   /tasks           create a task            (guarded)
//	GET    /tasks           list the caller's tasks  (guarded)
//	GET    /tasks/{id}      fetch one task           (guarded, owner only)
//	PATCH  /tasks/{id}      update fields            (guarded, owner only)
//	DELETE /tasks/{id}      delete                   (guarded, owner only)
//	GET    /users/me        caller's profile         (guarded)
//	PATCH  /users/me        update display name      (guarded)
//
// Guarded routes are wrapped by auth.Middleware, which rejects requests
// with 401 and one of MISSING_TOKEN, INVALID_TOKEN, or TOKEN_EXPIRED
// before any handler logic runs.
package api
