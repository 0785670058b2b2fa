package credentials

import (
	"context"
	"database/sql"
	"testing"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func seedCredentialsTable(t *testing.T, db *sql.DB, records ...Credential) {
	t.Helper()

	if _, err := db.Exec(`CREATE TABLE credentials (username text PRIMARY KEY, password_hash text NOT NULL, hash_version text NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	for _, rec := range records {
		hash, err := HashPassword(rec.Password, bcrypt.MinCost)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := db.Exec(`INSERT INTO credentials (username, password_hash, hash_version) VALUES (?, ?, ?)`,
			rec.Username, string(hash), HashVersionBcrypt); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestLoadFromDB(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	db, err := sql.Open("sqlite", "file:credentials_load?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("sql.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	seedCredentialsTable(t, db, Defaults()...)

	records, err := LoadFromDB(ctx, db)
	if err != nil {
		t.Fatalf("LoadFromDB() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Username != "prueba" || records[1].Username != "sebastian" {
		t.Errorf("records not ordered by username: %+v", records)
	}
	for _, rec := range records {
		if rec.PasswordHash == "1234" || rec.PasswordHash == "abcd" {
			t.Errorf("record %q holds a plaintext password", rec.Username)
		}
	}

	s, err := NewStoreFromHashes(records)
	if err != nil {
		t.Fatalf("NewStoreFromHashes() error: %v", err)
	}
	if !s.Validate("sebastian", "1234") {
		t.Error("record loaded from db does not validate")
	}
}

func TestLoadFromDBMissingTable(t *testing.T) {
	t.Parallel()

	db, err := sql.Open("sqlite", "file:credentials_missing?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("sql.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := LoadFromDB(context.Background(), db); err == nil {
		t.Fatal("LoadFromDB() without table returned nil error")
	}
}
