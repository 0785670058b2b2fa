package session

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSession means the request carries no session cookie.
	ErrNoSession = errors.New("session: no session")
	// ErrInvalidSession means a cookie was presented but does not name a
	// live session: bad signature, unknown id, or expired.
	ErrInvalidSession = errors.New("session: invalid session")
)

// Session binds an opaque id to the username that logged in.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its absolute expiry.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by id. Get returns (nil, nil) when the id is
// unknown or expired. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func validate(s Session, now time.Time) error {
	if s.ID == "" || s.Username == "" {
		return errors.New("session: missing id or username")
	}
	if s.Expired(now) {
		return errors.New("session: expires_at must be in the future")
	}
	return nil
}
