package middleware

import (
	"net/http"
	"strings"

	"github.com/schemacraft/schemacraft/internal/auth"
)

// SessionAuth authenticates dashboard requests using bearer session tokens
func SessionAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeUnauthorized(w, "missing authorization header")
				return
			}

			token := extractBearerToken(authHeader)
			if token == "" {
				writeUnauthorized(w, "invalid authorization header format")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				writeUnauthorized(w, "unauthorized")
				return
			}

			session := &auth.Session{
				UserID:  claims.UserID,
				Email:   claims.Email,
				IsAdmin: claims.IsAdmin,
			}

			ctx := auth.WithSession(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose session does not carry the admin flag.
// Must run after SessionAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := auth.SessionFrom(r.Context())
			if !ok {
				writeUnauthorized(w, "unauthorized")
				return
			}
			if !session.IsAdmin {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"admin access required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the Bearer token from the authorization header
func extractBearerToken(authHeader string) string {
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return authHeader[len(bearerPrefix):]
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
