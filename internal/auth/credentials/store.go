package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername      = errors.New("credentials: empty username")
	ErrDuplicateUsername  = errors.New("credentials: duplicate username")
	ErrUnknownHashVersion = errors.New("credentials: unknown hash version")
)

// Store is a read-only username/password lookup. It is built once and
// never mutated, so concurrent Validate calls need no locking.
type Store struct {
	hashes map[string][]byte
	dummy  []byte
}

// NewStore hashes every plaintext record with bcrypt at the given cost.
// Empty passwords are rejected.
func NewStore(records []Credential, cost int) (*Store, error) {
	hashed := make([]HashedCredential, 0, len(records))

	for _, rec := range records {
		hash, err := HashPassword(rec.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("credentials: record %q: %w", rec.Username, err)
		}
		hashed = append(hashed, HashedCredential{
			Username:     rec.Username,
			PasswordHash: string(hash),
			HashVersion:  HashVersionBcrypt,
		})
	}

	return NewStoreFromHashes(hashed)
}

// NewStoreFromHashes builds a store from already hashed records, such as
// rows of the credentials table. Every hash must be a well-formed bcrypt
// hash.
func NewStoreFromHashes(records []HashedCredential) (*Store, error) {
	hashes := make(map[string][]byte, len(records))
	dummyCost := bcrypt.DefaultCost

	for i, rec := range records {
		if rec.Username == "" {
			return nil, ErrEmptyUsername
		}
		if _, ok := hashes[rec.Username]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUsername, rec.Username)
		}
		if rec.HashVersion != HashVersionBcrypt {
			return nil, fmt.Errorf("%w %q for %q", ErrUnknownHashVersion, rec.HashVersion, rec.Username)
		}

		hash := []byte(rec.PasswordHash)
		cost, err := bcrypt.Cost(hash)
		if err != nil {
			return nil, fmt.Errorf("credentials: record %q: %w", rec.Username, err)
		}
		if i == 0 {
			dummyCost = cost
		}
		hashes[rec.Username] = hash
	}

	// same cost as the real hashes so failures take as long as successes
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), dummyCost)
	if err != nil {
		return nil, fmt.Errorf("credentials: dummy hash: %w", err)
	}

	return &Store{hashes: hashes, dummy: dummy}, nil
}

// Validate reports whether username and password exactly match a record.
// An empty password never matches. Unknown usernames are compared against
// a dummy hash so every failure path costs the same.
func (s *Store) Validate(username, password string) bool {
	hash, ok := s.hashes[username]
	if !ok || password == "" {
		VerifyPassword(s.dummy, password)
		return false
	}
	return VerifyPassword(hash, password)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.hashes)
}
