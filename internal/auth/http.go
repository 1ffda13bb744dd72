// ABOUTME: HTTP middleware guarding protected API endpoints with bearer tokens
// ABOUTME: Extracts the Authorization header, verifies the JWT, and attaches Identity to context

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Envelope error codes emitted by the guard. All three are surfaced with
// HTTP 401; the code carries the distinct reason so clients can react to
// expiry specifically without parsing message text.
const (
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
	CodeTokenExpired = "TOKEN_EXPIRED"
)

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// writeUnauthorized writes a 401 response envelope with a structured code.
func writeUnauthorized(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"success":false,"error":{"code":%q,"message":%q}}`, code, message)
}

// Middleware creates an HTTP middleware that extracts and validates bearer
// tokens. Requests that fail authentication are rejected before the wrapped
// handler runs; successful requests carry the decoded Identity in their
// context via WithIdentity/FromContext.
func Middleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				writeUnauthorized(w, CodeMissingToken, errMsg)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, ErrExpiredToken) {
					writeUnauthorized(w, CodeTokenExpired, "token expired")
					return
				}
				writeUnauthorized(w, CodeInvalidToken, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}
