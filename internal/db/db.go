package db

import (
	"context"
	"database/sql"
	"fmt"
)

type DB struct {
	*sql.DB
}

// Open connects with the named driver, verifies the connection and applies
// the credentials migration.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", driver, err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("db: ping %s: %w", driver, err)
	}

	if err := RunCredentialsMigration(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &DB{DB: sqlDB}, nil
}
