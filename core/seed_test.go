package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAccounts(t *testing.T) {
	accounts, err := DefaultAccounts()
	require.NoError(t, err)
	assert.Equal(t, []DefaultAccount{
		{Username: "admin", Password: "admin123", Role: RoleAdmin},
		{Username: "user", Password: "user123", Role: RoleUser},
	}, accounts)
}

func TestParseSeed(t *testing.T) {
	accounts, err := parseSeed([]byte("accounts:\n  - username: bob\n    password: bob123\n"))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, RoleUser, accounts[0].Role, "role defaults to user")

	_, err = parseSeed([]byte("accounts: []\n"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("accounts:\n  - username: \"bad name\"\n    password: x\n"))
	assert.Error(t, err)

	_, err = parseSeed([]byte("accounts: [unterminated"))
	assert.Error(t, err)
}

func TestResetAndSeedReplacesEverything(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCredentialStore()
	require.NoError(t, store.ReplaceAll(ctx, []CredentialRecord{
		{Username: "stale", PasswordHash: "x", Role: RoleAdmin},
		{Username: "admin", PasswordHash: "old", Role: RoleUser},
	}))

	hasher := testHasher()
	for i := 0; i < 2; i++ {
		require.NoError(t, ResetAndSeed(ctx, store, hasher))

		records, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "admin", records[0].Username)
		assert.Equal(t, RoleAdmin, records[0].Role)
		assert.True(t, hasher.Verify("admin123", records[0].PasswordHash))
		assert.Equal(t, "user", records[1].Username)
		assert.Equal(t, RoleUser, records[1].Role)
		assert.True(t, hasher.Verify("user123", records[1].PasswordHash))
	}

	_, err := store.FindByUsernameAndRole(ctx, "stale", RoleAdmin)
	assert.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestResetAndSeedStoreFailure(t *testing.T) {
	cause := errors.New("store unreachable")
	err := ResetAndSeed(context.Background(), faultyStore{err: cause}, testHasher())

	var fault *StoreFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "reset", fault.Op)
	assert.ErrorIs(t, err, cause)
}
