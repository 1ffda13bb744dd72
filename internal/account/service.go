// ABOUTME: Account registration, login, and profile service
// ABOUTME: Hashes credentials with bcrypt and issues JWT access tokens

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/passi/taskdeck/internal/auth"
	"github.com/passi/taskdeck/internal/store"
)

// ErrInvalidCredentials is returned when login fails, whether the email is
// unknown or the password doesn't match. The two cases are deliberately
// indistinguishable to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements account registration, login, and profile operations.
type Service struct {
	store    store.Store
	hasher   *auth.PasswordHasher
	verifier *auth.JWTVerifier
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewService creates an account service. tokenTTL bounds the lifetime of
// issued access tokens.
func NewService(st store.Store, hasher *auth.PasswordHasher, verifier *auth.JWTVerifier, tokenTTL time.Duration) *Service {
	return &Service{
		store:    st,
		hasher:   hasher,
		verifier: verifier,
		tokenTTL: tokenTTL,
		logger:   slog.Default().With("component", "account"),
	}
}

// Register creates a new account with a hashed password.
// Returns store.ErrDuplicateEmail if the email is already registered.
// The raw password is hashed immediately and never stored or logged.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (*store.Account, error) {
	// Pre-check for a friendlier error; the unique index is the real guard
	// against races.
	if _, err := s.store.GetAccountByEmail(ctx, email); err == nil {
		return nil, store.ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	account := &store.Account{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, store.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	s.logger.Info("account registered", "id", account.ID)
	return account, nil
}

// Login verifies the credentials and issues a signed access token whose
// payload is {sub: account.ID, email: account.Email}.
// Returns ErrInvalidCredentials for unknown emails and wrong passwords
// alike; the miss path still burns a bcrypt comparison so response timing
// doesn't reveal which case occurred.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (string, error) {
	account, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.VerifyDummy(rawPassword)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up account: %w", err)
	}

	if !s.hasher.Verify(account.PasswordHash, rawPassword) {
		return "", ErrInvalidCredentials
	}

	token, err := s.verifier.Issue(account.ID, account.Email, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.logger.Info("login successful", "id", account.ID)
	return token, nil
}

// Get returns the account for the given ID.
// Returns store.ErrNotFound if it doesn't exist.
func (s *Service) Get(ctx context.Context, id string) (*store.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// UpdateDisplayName changes the caller's display name.
// Only the authenticated account can be updated; the email and password
// are not touched here.
func (s *Service) UpdateDisplayName(ctx context.Context, id, name string) (*store.Account, error) {
	account, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	account.DisplayName = name
	account.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	return account, nil
}
