package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Manager issues, resolves and ends sessions for HTTP clients. The cookie
// only ever carries the signed session id; the username lives in the Store.
type Manager struct {
	store  Store
	codec  *Codec
	ttl    time.Duration
	cookie CookieOptions
	now    func() time.Time
}

type ManagerConfig struct {
	Secret []byte
	TTL    time.Duration
	Cookie CookieOptions
}

func NewManager(store Store, cfg ManagerConfig) (*Manager, error) {
	if store == nil {
		return nil, errors.New("session: nil store")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session: ttl must be positive, got %s", cfg.TTL)
	}

	codec, err := NewCodec(cfg.Secret, cfg.Cookie.Name(), cfg.TTL)
	if err != nil {
		return nil, err
	}

	return &Manager{
		store:  store,
		codec:  codec,
		ttl:    cfg.TTL,
		cookie: cfg.Cookie,
		now:    time.Now,
	}, nil
}

// CookieName returns the name of the cookie this manager reads and writes.
func (m *Manager) CookieName() string {
	return m.cookie.Name()
}

// Start creates a fresh session for username and sets the cookie. Any
// session the request already carried is deleted first.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, username string) (*Session, error) {
	if prev, err := m.cookieID(r); err == nil {
		if err := m.store.Delete(ctx, prev); err != nil {
			return nil, err
		}
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := m.now()
	sess := Session{
		ID:        id,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	value, err := m.codec.Encode(id)
	if err != nil {
		return nil, err
	}

	if err := m.store.Create(ctx, sess); err != nil {
		return nil, err
	}

	SetCookie(w, value, m.cookie)

	return &sess, nil
}

// Resolve returns the live session named by the request cookie.
// It returns ErrNoSession when there is no cookie and ErrInvalidSession when
// the cookie does not name a live session. Other errors come from the store.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*Session, error) {
	id, err := m.cookieID(r)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Expired(m.now()) {
		return nil, ErrInvalidSession
	}

	return sess, nil
}

// End deletes the session named by the request, if any, and clears the
// cookie. It is safe to call without a session. The cookie is cleared even
// when the store fails; the store error is returned.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if id, cerr := m.cookieID(r); cerr == nil {
		err = m.store.Delete(ctx, id)
	}

	m.Clear(w)
	return err
}

// Clear removes the session cookie without touching the store.
func (m *Manager) Clear(w http.ResponseWriter) {
	ClearCookie(w, m.cookie)
}

func (m *Manager) cookieID(r *http.Request) (string, error) {
	c, err := r.Cookie(m.cookie.Name())
	if err != nil || c.Value == "" {
		return "", ErrNoSession
	}
	return m.codec.Decode(c.Value)
}
