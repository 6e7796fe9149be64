package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/schemacraft/schemacraft/internal/metrics"
)

// Metrics records request counts and latency per API surface
func Metrics(apiMetrics *metrics.APIMetrics, surface string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(ww, r)

			apiMetrics.RecordRequest(surface, r.Method, strconv.Itoa(ww.statusCode), time.Since(start))
		})
	}
}
