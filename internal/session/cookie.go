package session

import (
	"net/http"
)

const (
	// SecureCookieName is used when cookies are marked Secure. The __Host-
	// prefix pins the cookie to the exact host and path "/".
	SecureCookieName = "__Host-session"
	// CookieName is used for plain HTTP deployments.
	CookieName = "session"
)

// CookieOptions defines how session cookies are issued.
type CookieOptions struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// normalize applies safe defaults without breaking callers
func (o CookieOptions) normalize() CookieOptions {
	if o.Path == "" || o.Secure {
		o.Path = "/" // required for __Host-
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteLaxMode
	}
	return o
}

// Name returns the cookie name for these options.
func (o CookieOptions) Name() string {
	if o.Secure {
		return SecureCookieName
	}
	return CookieName
}

// SetCookie issues the session cookie. It carries no Expires or Max-Age, so
// the browser drops it when the browsing session ends.
func SetCookie(w http.ResponseWriter, value string, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name(),
		Value:    value,
		Path:     opts.Path,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name(),
		Value:    "",
		Path:     opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
