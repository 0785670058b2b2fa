package db

import (
	"context"
	"database/sql"
	"fmt"
)

const credentialsMigration = `
CREATE TABLE IF NOT EXISTS credentials (
    username text PRIMARY KEY,
    password_hash text NOT NULL,
    hash_version text NOT NULL DEFAULT 'bcrypt'
)`

// RunCredentialsMigration creates the credentials table if it is missing.
// The statement is portable across postgres and sqlite.
func RunCredentialsMigration(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, credentialsMigration); err != nil {
		return fmt.Errorf("db: credentials migration: %w", err)
	}
	return nil
}
