package core

import (
	"context"
	"errors"
	"fmt"
)

// Role is an access tier. It selects the credential record at login and is
// the key checked by the authorization gate.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw role string onto a known Role. Matching is exact.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// Identity is the snapshot bound to a session after a successful login.
type Identity struct {
	Username string
	Role     Role
}

// LoginAttempt is the raw credential triple submitted by a client.
type LoginAttempt struct {
	Username string
	Password string
	Role     string
}

var (
	// ErrInvalidFormat is returned when the username or password fails validation.
	ErrInvalidFormat = errors.New("invalid username or password format")
	// ErrInvalidCredentials is returned when no record matches or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// StoreFault wraps an unexpected credential store failure.
type StoreFault struct {
	Op  string
	Err error
}

func (e *StoreFault) Error() string {
	return fmt.Sprintf("credential store %s: %v", e.Op, e.Err)
}

func (e *StoreFault) Unwrap() error { return e.Err }

// AuthService defines authentication behaviour.
type AuthService interface {
	Authenticate(ctx context.Context, attempt LoginAttempt) (Identity, error)
}
