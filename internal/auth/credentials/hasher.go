package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashVersionBcrypt = "bcrypt"

	// bcrypt ignores input past this length, so longer passwords would
	// not be an exact match.
	maxPasswordBytes = 72
)

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrPasswordTooLong = fmt.Errorf("password exceeds %d bytes", maxPasswordBytes)
)

// HashPassword hashes a plaintext password using bcrypt at the given cost.
func HashPassword(password string, cost int) ([]byte, error) {
	switch {
	case password == "":
		return nil, ErrEmptyPassword
	case len(password) > maxPasswordBytes:
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("credentials: hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword reports whether password matches hash.
func VerifyPassword(hash []byte, password string) bool {
	if len(password) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
