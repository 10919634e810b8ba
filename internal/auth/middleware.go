package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type for context keys in this package.
// A package-private key type means only this package can read or write
// the userID value — no collisions with other packages' context values.
type contextKey string

const userIDKey contextKey = "userID"

// CookieName is the session cookie the middleware reads and the login
// handlers set.
const CookieName = "paperpal_session"

// RequireAuth enforces authentication on protected routes.
//
// It reads the JWT from the session cookie, validates it, and stores the
// userID in the request context. Missing or invalid tokens end the
// request with 401.
//
// COOKIE-BASED TOKEN STORAGE:
// The JWT lives in an HttpOnly cookie rather than a header the client
// script manages. HttpOnly means page JavaScript cannot read it, so an
// XSS bug can't exfiltrate the session.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the
// request context. Returns ("", false) for anonymous requests.
//
// Usage in handlers:
//
//	userID, ok := auth.UserIDFromContext(r.Context())
//	if !ok {
//	    // anonymous
//	}
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID reads the session cookie and validates its JWT.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		// http.ErrNoCookie — not an error, just anonymous
		return "", err
	}

	return tokens.Validate(cookie.Value)
}
