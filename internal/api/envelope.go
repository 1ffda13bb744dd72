// ABOUTME: Uniform JSON response envelope shared by all API endpoints
// ABOUTME: Callers branch on the success discriminant and the structured error code

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope error codes. These are the control-flow signal for clients;
// error messages are display-only and must never be string-matched.
// The guard's MISSING_TOKEN / INVALID_TOKEN / TOKEN_EXPIRED codes are
// defined in the auth package.
const (
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInternal           = "INTERNAL"
)

// ErrorBody is the error half of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the uniform envelope returned by every endpoint: either
// {success: true, data, message} or {success: false, error}.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// writeSuccess writes a success envelope with the given payload.
func writeSuccess(w http.ResponseWriter, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(Response{Success: true, Data: data, Message: message}); err != nil {
		slog.Default().Error("encoding response", "error", err)
	}
}

// writeError writes an error envelope with the given status and code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Response{Success: false, Error: &ErrorBody{Code: code, Message: message}}); err != nil {
		slog.Default().Error("encoding response", "error", err)
	}
}
