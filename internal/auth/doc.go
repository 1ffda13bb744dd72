// Package auth provides authentication for taskdeck.
//
// # Tokens
//
// API clients authenticate with JWT bearer tokens signed with HS256 using
// the configured jwt_secret. Token payloads carry the account ID ("sub")
// and email; validity is purely a function of signature and clock, so
// verification is stateless and tokens are never persisted server-side.
//
//	token, err := verifier.Issue(accountID, email, ttl)
//	identity, err := verifier.Verify(token)
//
// Verify distinguishes ErrExpiredToken from ErrInvalidToken so the HTTP
// layer can report TOKEN_EXPIRED separately from INVALID_TOKEN while both
// map to status 401.
//
// # Request Guard
//
// Middleware(verifier) wraps protected routes. It extracts the
// "Authorization: Bearer" header, verifies the token, and attaches the
// decoded Identity to the request context. Handlers retrieve it with
// FromContext and pass it into services as an explicit value; ownership
// checks are functions of (identity, resource), never ambient state.
//
// # Passwords
//
// PasswordHasher wraps bcrypt with a configurable cost factor. Login
// failures for unknown emails still perform a dummy bcrypt comparison so
// response timing does not reveal whether an email is registered.
package auth
