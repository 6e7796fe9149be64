package handlers

import (
	"net/http"

	"github.com/schemacraft/schemacraft/internal/version"
)

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ReadyChecker reports whether a component is ready to serve
type ReadyChecker interface {
	Ready() bool
}

// HealthCheck handles health check requests
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: version.Get().Version,
	})
}

// ReadinessCheck returns a handler that reports readiness of the document store
func ReadinessCheck(store ReadyChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil || !store.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ready"})
	}
}
