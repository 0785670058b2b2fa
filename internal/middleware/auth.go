package middleware

import (
	"context"
	"errors"
	"net/http"

	"otraveznose/internal/logger"
	"otraveznose/internal/session"
)

// LoginPath is where anonymous clients are sent.
const LoginPath = "/"

// unexported, collision-proof context key
type usernameContextKeyType struct{}

var usernameKey = usernameContextKeyType{}

// UsernameFromContext extracts the authenticated username from context.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok && name != ""
}

// WithUsername returns a copy of ctx carrying username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

type AuthMiddleware struct {
	Sessions *session.Manager
}

func NewAuthMiddleware(sessions *session.Manager) *AuthMiddleware {
	return &AuthMiddleware{Sessions: sessions}
}

// RequireAuth lets requests with a live session through and redirects
// everything else to the login page.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.Sessions.Resolve(r.Context(), r)

		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), sess.Username)))

		case errors.Is(err, session.ErrNoSession):
			http.Redirect(w, r, LoginPath, http.StatusFound)

		case errors.Is(err, session.ErrInvalidSession):
			// drop the stale cookie so the browser stops sending it
			a.Sessions.Clear(w)
			http.Redirect(w, r, LoginPath, http.StatusFound)

		default:
			logger.Error("session lookup failed", map[string]any{
				"path":  r.URL.Path,
				"error": err.Error(),
			})
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	})
}
