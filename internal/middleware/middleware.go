package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/HobbyShelf/HS-Backend/internal/views"
)

// SessionData is what the guard needs to know about a stored session.
type SessionData struct {
	Username   string
	IsLoggedIn bool
	ExpiresAt  time.Time
}

// SessionFetcher resolves a client-presented token to its stored session.
type SessionFetcher interface {
	FindSessionByToken(token string) (SessionData, error)
}

// Claims is the per-request authentication claim resolved once by the guard.
type Claims struct {
	Username string
}

type contextKey string

const claimsContextKey contextKey = "authClaims"

// GetClaims returns the authentication claim injected by SessionGuard.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(Claims)
	return claims, ok
}

// Paths reachable without a session: root, login, logout.
var exemptPaths = map[string]struct{}{
	"/":       {},
	"/login":  {},
	"/logout": {},
}

// SessionGuard gates every request on an authenticated session. A missing
// cookie, unknown token, expired session, or a false IsLoggedIn flag all get
// the same answer: the login view, never the requested resource.
func SessionGuard(fetcher SessionFetcher, v *views.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie("session_id")
			if err != nil {
				renderLogin(w, v)
				return
			}

			session, err := fetcher.FindSessionByToken(cookie.Value)
			if err != nil || !session.IsLoggedIn {
				renderLogin(w, v)
				return
			}

			if session.ExpiresAt.Before(time.Now()) {
				renderLogin(w, v)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, Claims{Username: session.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func renderLogin(w http.ResponseWriter, v *views.Renderer) {
	v.Render(w, http.StatusUnauthorized, "login.html", map[string]any{
		"Error": "Please log in to access this page",
	})
}
