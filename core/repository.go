package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// CredentialRecord is a stored username/password-hash/role triple.
type CredentialRecord struct {
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// ErrCredentialNotFound is returned by lookups that match no record. It is a
// normal outcome, not a store failure.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialStore defines persistence operations for credential records.
type CredentialStore interface {
	// FindByUsernameAndRole matches both fields exactly and case-sensitively.
	FindByUsernameAndRole(ctx context.Context, username string, role Role) (*CredentialRecord, error)
	// ReplaceAll deletes every record and inserts records in their place.
	ReplaceAll(ctx context.Context, records []CredentialRecord) error
	// List returns all records ordered by username.
	List(ctx context.Context) ([]CredentialRecord, error)
}

// validateRecords enforces one record per username and a known role.
func validateRecords(records []CredentialRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.Username == "" {
			return errors.New("credential record without username")
		}
		if _, ok := ParseRole(string(r.Role)); !ok {
			return fmt.Errorf("credential record %s: unknown role %q", r.Username, r.Role)
		}
		if _, dup := seen[r.Username]; dup {
			return fmt.Errorf("duplicate credential record for %s", r.Username)
		}
		seen[r.Username] = struct{}{}
	}
	return nil
}

// MemoryCredentialStore keeps records in process memory.
type MemoryCredentialStore struct {
	mu      sync.RWMutex
	records map[string]CredentialRecord
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{records: map[string]CredentialRecord{}}
}

func (s *MemoryCredentialStore) FindByUsernameAndRole(ctx context.Context, username string, role Role) (*CredentialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[username]
	if !ok || r.Role != role {
		return nil, ErrCredentialNotFound
	}
	return &r, nil
}

func (s *MemoryCredentialStore) ReplaceAll(ctx context.Context, records []CredentialRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}
	now := time.Now().UTC()
	next := make(map[string]CredentialRecord, len(records))
	for _, r := range records {
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		next[r.Username] = r
	}
	s.mu.Lock()
	s.records = next
	s.mu.Unlock()
	return nil
}

func (s *MemoryCredentialStore) List(ctx context.Context) ([]CredentialRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]CredentialRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
