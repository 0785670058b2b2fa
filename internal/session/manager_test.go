package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()

	m, err := NewManager(store, ManagerConfig{Secret: testSecret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}
	return m
}

// carry copies the cookies set on w onto a new request.
func carry(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		r.AddCookie(c)
	}
	return r
}

func TestManager(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("start then resolve", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, NewMemoryStore())
		w := httptest.NewRecorder()

		sess, err := m.Start(ctx, w, httptest.NewRequest(http.MethodPost, "/login", nil), "sebastian")
		if err != nil {
			t.Fatalf("Start() error: %v", err)
		}

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("cookies = %d, want 1", len(cookies))
		}
		c := cookies[0]
		if c.Name != CookieName || !c.HttpOnly || c.Path != "/" {
			t.Errorf("cookie = %+v", c)
		}
		if c.MaxAge != 0 || !c.Expires.IsZero() {
			t.Errorf("cookie should be browser-session scoped, got MaxAge=%d Expires=%v", c.MaxAge, c.Expires)
		}
		if c.Value == sess.ID || c.Value == "sebastian" {
			t.Error("cookie value is not opaque")
		}

		got, err := m.Resolve(ctx, carry(w))
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if got.Username != "sebastian" || got.ID != sess.ID {
			t.Errorf("Resolve() = %+v, want %+v", got, sess)
		}
	})

	t.Run("no cookie is ErrNoSession", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, NewMemoryStore())
		_, err := m.Resolve(ctx, httptest.NewRequest(http.MethodGet, "/home", nil))
		if !errors.Is(err, ErrNoSession) {
			t.Errorf("err = %v, want ErrNoSession", err)
		}
	})

	t.Run("forged cookie is ErrInvalidSession", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, NewMemoryStore())
		r := httptest.NewRequest(http.MethodGet, "/home", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "sebastian"})

		if _, err := m.Resolve(ctx, r); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("cookie for a deleted session is ErrInvalidSession", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		m := newTestManager(t, store)
		w := httptest.NewRecorder()
		sess, err := m.Start(ctx, w, httptest.NewRequest(http.MethodPost, "/login", nil), "prueba")
		if err != nil {
			t.Fatal(err)
		}
		_ = store.Delete(ctx, sess.ID)

		if _, err := m.Resolve(ctx, carry(w)); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("expired session is ErrInvalidSession", func(t *testing.T) {
		t.Parallel()

		m := newTestManager(t, NewMemoryStore())
		w := httptest.NewRecorder()
		if _, err := m.Start(ctx, w, httptest.NewRequest(http.MethodPost, "/login", nil), "prueba"); err != nil {
			t.Fatal(err)
		}

		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := m.Resolve(ctx, carry(w)); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("second login replaces the first session", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		m := newTestManager(t, store)

		w1 := httptest.NewRecorder()
		first, err := m.Start(ctx, w1, httptest.NewRequest(http.MethodPost, "/login", nil), "sebastian")
		if err != nil {
			t.Fatal(err)
		}

		r2 := carry(w1)
		w2 := httptest.NewRecorder()
		second, err := m.Start(ctx, w2, r2, "prueba")
		if err != nil {
			t.Fatal(err)
		}

		if first.ID == second.ID {
			t.Error("second login reused the session id")
		}
		if got, _ := store.Get(ctx, first.ID); got != nil {
			t.Error("first session survived a second login")
		}
		if store.Len() != 1 {
			t.Errorf("store Len() = %d, want 1", store.Len())
		}
	})

	t.Run("end deletes and clears, and is idempotent", func(t *testing.T) {
		t.Parallel()

		store := NewMemoryStore()
		m := newTestManager(t, store)
		w := httptest.NewRecorder()
		if _, err := m.Start(ctx, w, httptest.NewRequest(http.MethodPost, "/login", nil), "sebastian"); err != nil {
			t.Fatal(err)
		}
		r := carry(w)

		for i := 0; i < 2; i++ {
			out := httptest.NewRecorder()
			if err := m.End(ctx, out, r); err != nil {
				t.Fatalf("End() #%d error: %v", i+1, err)
			}
			cookies := out.Result().Cookies()
			if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
				t.Errorf("End() #%d did not clear the cookie: %+v", i+1, cookies)
			}
		}

		if store.Len() != 0 {
			t.Errorf("store Len() = %d after End, want 0", store.Len())
		}
		if _, err := m.Resolve(ctx, r); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Resolve after End err = %v, want ErrInvalidSession", err)
		}
	})

	t.Run("secure cookies use the __Host- name", func(t *testing.T) {
		t.Parallel()

		m, err := NewManager(NewMemoryStore(), ManagerConfig{
			Secret: testSecret,
			TTL:    time.Hour,
			Cookie: CookieOptions{Secure: true, Path: "/app"},
		})
		if err != nil {
			t.Fatal(err)
		}
		w := httptest.NewRecorder()
		if _, err := m.Start(ctx, w, httptest.NewRequest(http.MethodPost, "/login", nil), "u"); err != nil {
			t.Fatal(err)
		}
		c := w.Result().Cookies()[0]
		if c.Name != SecureCookieName || !c.Secure || c.Path != "/" {
			t.Errorf("cookie = %+v", c)
		}
		if m.CookieName() != SecureCookieName {
			t.Errorf("CookieName() = %q", m.CookieName())
		}
	})

	t.Run("invalid configuration", func(t *testing.T) {
		t.Parallel()

		if _, err := NewManager(nil, ManagerConfig{Secret: testSecret, TTL: time.Hour}); err == nil {
			t.Error("nil store accepted")
		}
		if _, err := NewManager(NewMemoryStore(), ManagerConfig{Secret: testSecret}); err == nil {
			t.Error("zero ttl accepted")
		}
		if _, err := NewManager(NewMemoryStore(), ManagerConfig{TTL: time.Hour}); err == nil {
			t.Error("empty secret accepted")
		}
	})
}

func TestGenerateID(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id, err := GenerateID()
		if err != nil {
			t.Fatalf("GenerateID() error: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
