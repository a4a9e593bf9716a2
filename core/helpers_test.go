package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testHasher() BcryptHasher {
	return BcryptHasher{Cost: bcrypt.MinCost}
}

func seededMemoryStore(t *testing.T) *MemoryCredentialStore {
	t.Helper()
	store := NewMemoryCredentialStore()
	require.NoError(t, ResetAndSeed(context.Background(), store, testHasher()))
	return store
}

// faultyStore fails every call with err.
type faultyStore struct {
	err error
}

func (s faultyStore) FindByUsernameAndRole(context.Context, string, Role) (*CredentialRecord, error) {
	return nil, s.err
}

func (s faultyStore) ReplaceAll(context.Context, []CredentialRecord) error { return s.err }

func (s faultyStore) List(context.Context) ([]CredentialRecord, error) { return nil, s.err }

// countingStore records how many lookups reached the wrapped store.
type countingStore struct {
	CredentialStore
	lookups int
}

func (s *countingStore) FindByUsernameAndRole(ctx context.Context, username string, role Role) (*CredentialRecord, error) {
	s.lookups++
	return s.CredentialStore.FindByUsernameAndRole(ctx, username, role)
}

// blockingStore waits for the lookup context to end.
type blockingStore struct {
	CredentialStore
}

func (blockingStore) FindByUsernameAndRole(ctx context.Context, _ string, _ Role) (*CredentialRecord, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// spyHasher counts Verify calls on top of a real hasher.
type spyHasher struct {
	PasswordHasher
	verifies int
}

func (h *spyHasher) Verify(plaintext, digest string) bool {
	h.verifies++
	return h.PasswordHasher.Verify(plaintext, digest)
}
