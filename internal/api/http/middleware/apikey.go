package middleware

import (
	"errors"
	"net/http"

	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/metrics"
)

// APIKeyAuth authenticates generated-API requests using the X-API-Key header
// and charges each request against the key owner's monthly quota.
func APIKeyAuth(users *auth.Store, apiMetrics *metrics.APIMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-API-Key")
			if key == "" {
				writeUnauthorized(w, "missing api key")
				return
			}

			user, err := users.GetByAPIKey(key)
			if err != nil {
				writeUnauthorized(w, "invalid api key")
				return
			}

			if err := users.RecordRequest(user.ID); err != nil {
				var quotaErr auth.QuotaExceededError
				if errors.As(err, &quotaErr) {
					apiMetrics.RecordQuotaRejection()
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusTooManyRequests)
					w.Write([]byte(`{"error":"monthly api quota exceeded"}`))
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"internal server error"}`))
				return
			}

			ctx := auth.WithAPIUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
