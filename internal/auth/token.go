// ABOUTME: JWT token issuing and verification for authenticating API requests
// ABOUTME: Uses HS256 signing with configurable secret and TTL

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// MinSecretLength is the minimum allowed signing secret length in bytes.
// Shorter secrets make HS256 tokens practical to brute-force offline.
const MinSecretLength = 32

// Identity is the decoded payload of a verified token: who is making
// the request.
type Identity struct {
	Subject string // account ID from the "sub" claim
	Email   string // account email from the "email" claim
}

// TokenVerifier defines the interface for token verification
type TokenVerifier interface {
	Verify(tokenString string) (*Identity, error)
}

// JWTVerifier issues and verifies HS256 signed JWTs.
// The secret is process-wide configuration loaded once at startup;
// rotating it invalidates all outstanding tokens.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWT verifier with the given secret.
// Returns an error if the secret is shorter than MinSecretLength.
func NewJWTVerifier(secret []byte) (*JWTVerifier, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes, got %d", MinSecretLength, len(secret))
	}
	return &JWTVerifier{secret: secret}, nil
}

// Verify validates the token signature and expiration, and extracts the
// caller identity from the "sub" and "email" claims.
// Returns ErrExpiredToken for tokens past their expiration instant and
// ErrInvalidToken (possibly wrapped) for everything else that fails.
func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})

	if err != nil {
		// Check if it's specifically an expiration error
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: email", ErrMissingClaim)
	}

	return &Identity{Subject: sub, Email: email}, nil
}

// Issue creates a new JWT for the given account with the configured secret.
// The expiration instant is expiresIn from now; tokens are never persisted
// server-side, so validity is purely signature plus clock.
func (v *JWTVerifier) Issue(subject, email string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(expiresIn).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
