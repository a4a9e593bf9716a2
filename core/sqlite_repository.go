package core

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const sqliteCredentialSchema = `
CREATE TABLE IF NOT EXISTS credentials (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
	created_at    TIMESTAMP NOT NULL
)`

// SQLiteCredentialStore implements CredentialStore on a database/sql handle
// opened with the sqlite3 driver.
type SQLiteCredentialStore struct {
	DB *sql.DB
}

func NewSQLiteCredentialStore(db *sql.DB) *SQLiteCredentialStore {
	return &SQLiteCredentialStore{DB: db}
}

func (s *SQLiteCredentialStore) FindByUsernameAndRole(ctx context.Context, username string, role Role) (*CredentialRecord, error) {
	const q = `SELECT username, password_hash, role, created_at FROM credentials WHERE username = ? AND role = ?`
	var (
		rec     CredentialRecord
		roleStr string
	)
	err := s.DB.QueryRowContext(ctx, q, username, string(role)).Scan(&rec.Username, &rec.PasswordHash, &roleStr, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCredentialNotFound
	} else if err != nil {
		return nil, err
	}
	rec.Role = Role(roleStr)
	return &rec, nil
}

func (s *SQLiteCredentialStore) ReplaceAll(ctx context.Context, records []CredentialRecord) error {
	if err := validateRecords(records); err != nil {
		return err
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, sqliteCredentialSchema); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, rec := range records {
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		insertQuery := `
		INSERT INTO credentials (username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, insertQuery, rec.Username, rec.PasswordHash, string(rec.Role), createdAt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteCredentialStore) List(ctx context.Context) ([]CredentialRecord, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT username, password_hash, role, created_at FROM credentials ORDER BY username`)
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
