package core

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// DefaultAccount is a plaintext account definition from seed.yaml.
type DefaultAccount struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
}

type seedFile struct {
	Accounts []DefaultAccount `yaml:"accounts"`
}

// DefaultAccounts returns the fixed accounts installed on every reset.
func DefaultAccounts() ([]DefaultAccount, error) {
	return parseSeed(seedYAML)
}

func parseSeed(data []byte) ([]DefaultAccount, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed accounts: %w", err)
	}
	if len(f.Accounts) == 0 {
		return nil, errors.New("seed defines no accounts")
	}
	for i, a := range f.Accounts {
		if a.Role == "" {
			f.Accounts[i].Role = RoleUser
		}
		if !IsValidUsername(a.Username) || !IsValidPassword(a.Password) {
			return nil, fmt.Errorf("seed account %q has an invalid username or password", a.Username)
		}
	}
	return f.Accounts, nil
}

// ResetAndSeed deletes every credential record and installs the default
// accounts with freshly computed hashes.
func ResetAndSeed(ctx context.Context, store CredentialStore, hasher PasswordHasher) error {
	accounts, err := DefaultAccounts()
	if err != nil {
		return err
	}

	records := make([]CredentialRecord, 0, len(accounts))
	for _, a := range accounts {
		hash, err := hasher.Hash(a.Password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.Username, err)
		}
		records = append(records, CredentialRecord{Username: a.Username, PasswordHash: hash, Role: a.Role})
	}

	if err := store.ReplaceAll(ctx, records); err != nil {
		return &StoreFault{Op: "reset", Err: err}
	}
	log.Printf("default users created: %d accounts", len(records))
	return nil
}
