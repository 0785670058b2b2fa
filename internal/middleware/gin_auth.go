package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyUsername is the gin context key holding the session username.
const ContextKeyUsername = "username"

// GinRequireAuth adapts the net/http AuthMiddleware to Gin.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false

		// Bridge handler to allow net/http middleware execution
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			if name, ok := UsernameFromContext(r.Context()); ok {
				c.Set(ContextKeyUsername, name)
			}
			c.Next()
		})

		auth.RequireAuth(next).ServeHTTP(c.Writer, c.Request)

		// the auth middleware answered on its own: stop the gin chain
		if !passed {
			c.Abort()
		}
	}
}

// Username returns the authenticated username stored by GinRequireAuth.
func Username(c *gin.Context) string {
	return c.GetString(ContextKeyUsername)
}
