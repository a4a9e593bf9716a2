package core

import (
	"context"
	"errors"
	"time"
)

// RepositoryAuthService authenticates login attempts against a CredentialStore.
type RepositoryAuthService struct {
	store   CredentialStore
	hasher  PasswordHasher
	timeout time.Duration
}

// NewRepositoryAuthService wires a store and hasher. timeout bounds each
// store lookup; zero means no extra bound beyond the caller's context.
func NewRepositoryAuthService(store CredentialStore, hasher PasswordHasher, timeout time.Duration) *RepositoryAuthService {
	return &RepositoryAuthService{store: store, hasher: hasher, timeout: timeout}
}

// Authenticate runs sanitize, validate, lookup and verify strictly in that
// order and stops at the first failure. It returns ErrInvalidFormat,
// ErrInvalidCredentials or a *StoreFault.
func (s *RepositoryAuthService) Authenticate(ctx context.Context, attempt LoginAttempt) (Identity, error) {
	username := Sanitize(attempt.Username)
	if !IsValidUsername(username) || !IsValidPassword(attempt.Password) {
		return Identity{}, ErrInvalidFormat
	}

	// An unknown role cannot match any record.
	role, ok := ParseRole(attempt.Role)
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}

	rec, err := s.lookup(ctx, username, role)
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, &StoreFault{Op: "lookup", Err: err}
	}

	if !s.hasher.Verify(attempt.Password, rec.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: rec.Username, Role: rec.Role}, nil
}

func (s *RepositoryAuthService) lookup(ctx context.Context, username string, role Role) (*CredentialRecord, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	rec, err := s.store.FindByUsernameAndRole(ctx, username, role)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrCredentialNotFound
	}
	return rec, nil
}
