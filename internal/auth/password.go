// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Cost factor comes from configuration; comparisons are constant-time

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor used when configuration does not
// override it. Matches bcrypt.DefaultCost (10).
const DefaultBcryptCost = bcrypt.DefaultCost

// dummyHash is a bcrypt digest of an arbitrary string, used for timing-safe
// comparison when the account doesn't exist. This prevents timing attacks
// that could enumerate registered emails.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// PasswordHasher hashes and verifies passwords with a fixed bcrypt cost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a hasher with the given bcrypt cost.
// Costs outside bcrypt's supported range fall back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash computes a salted bcrypt digest of the raw password.
// The raw password is never stored or logged.
func (h *PasswordHasher) Hash(rawPassword string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(rawPassword), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether rawPassword matches the stored hash.
// bcrypt's own compare is constant-time with respect to the hash.
func (h *PasswordHasher) Verify(hash, rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawPassword)) == nil
}

// VerifyDummy burns a bcrypt comparison against a fixed digest.
// Called on login for unknown emails so the miss path costs the same
// as a real comparison.
func (h *PasswordHasher) VerifyDummy(rawPassword string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(rawPassword))
}
