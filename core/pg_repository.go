package core

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgCredentialSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PgCredentialStore implements CredentialStore using pgxpool.
type PgCredentialStore struct {
	db *pgxpool.Pool
}

func NewPgCredentialStore(db *pgxpool.Pool) *PgCredentialStore {
	return &PgCredentialStore{db: db}
}

func (r *PgCredentialStore) FindByUsernameAndRole(ctx context.Context, username string, role Role) (*CredentialRecord, error) {
	const q = `SELECT username, password_hash, role, created_at FROM credentials WHERE username=$1 AND role=$2`
	var (
		rec     CredentialRecord
		roleStr string
	)
	err := r.db.QueryRow(ctx, q, username, string(role)).Scan(&rec.Username, &rec.PasswordHash, &roleStr, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}
		return nil, err
	}
	rec.Role = Role(roleStr)
	return &rec, nil
}

// ReplaceAll creates the table if needed, then swaps the contents in one
// transaction so readers see either the old or the new set.
func (r *PgCredentialStore) ReplaceAll(ctx context.Context, records []CredentialRecord) error {
	if err := validateRecords(records); err != nil {
		return err
	}
	now := time.Now().UTC()
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, pgCredentialSchema); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM credentials`); err != nil {
			return err
		}
		for _, rec := range records {
			createdAt := rec.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			const q = `INSERT INTO credentials (username, password_hash, role, created_at) VALUES ($1,$2,$3,$4)`
			if _, err := tx.Exec(ctx, q, rec.Username, rec.PasswordHash, string(rec.Role), createdAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PgCredentialStore) List(ctx context.Context) ([]CredentialRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT username, password_hash, role, created_at FROM credentials ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CredentialRecord
	for rows.Next() {
		var (
			rec     CredentialRecord
			roleStr string
		)
		if err := rows.Scan(&rec.Username, &rec.PasswordHash, &roleStr, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Role = Role(roleStr)
		out = append(out, rec)
	}
	return out, rows.Err()
}
