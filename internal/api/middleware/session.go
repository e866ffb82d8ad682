package middleware

import (
	"context"
	"net/http"

	"github.com/nadscollection/storefront/internal/session"
)

// CookieName holds the signed guest session token.
const CookieName = "cart_session"

type contextKey string

const sessionContextKey contextKey = "session"

// Session attaches a guest session ID to every request. A missing, invalid,
// or expired token gets a fresh session and a replacement cookie; requests
// never fail for lack of a session.
func Session(svc *session.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(CookieName); err == nil {
				if id, err := svc.Validate(cookie.Value); err == nil {
					sessionID = id
				}
			}

			if sessionID == "" {
				token, id, expiresAt, err := svc.Issue()
				if err != nil {
					http.Error(w, "failed to start session", http.StatusInternalServerError)
					return
				}
				sessionID = id
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					Expires:  expiresAt,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSessionID retrieves the session ID from the request context.
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey).(string)
	return id
}
