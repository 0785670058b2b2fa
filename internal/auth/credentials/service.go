package credentials

import (
	"context"
	"database/sql"
	"fmt"
)

// LoadFromDB reads the full credential set from the credentials table.
// It is called once at startup; the result feeds NewStoreFromHashes.
func LoadFromDB(ctx context.Context, db *sql.DB) ([]HashedCredential, error) {

	rows, err := db.QueryContext(ctx, `
		SELECT username, password_hash, hash_version
		FROM credentials
		ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("credentials: query: %w", err)
	}
	defer rows.Close()

	var out []HashedCredential
	for rows.Next() {
		var c HashedCredential
		if err := rows.Scan(&c.Username, &c.PasswordHash, &c.HashVersion); err != nil {
			return nil, fmt.Errorf("credentials: scan: %w", err)
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("credentials: rows: %w", err)
	}

	return out, nil
}
