package handlers

import (
	"net/http"

	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
)

// UserHandlers provides HTTP handlers for the account dashboard
type UserHandlers struct {
	users    *auth.Store
	registry *registry.Store
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(users *auth.Store, reg *registry.Store) *UserHandlers {
	return &UserHandlers{
		users:    users,
		registry: reg,
	}
}

// Dashboard handles GET /user/dashboard
func (h *UserHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(session.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	schemas := h.registry.List(r.Context(), session.UserID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":         user.Public(),
		"api_key":      user.APIKey,
		"schema_count": len(schemas),
		"usage":        user.Usage,
	})
}

// RegenerateAPIKey handles POST /user/regenerate-api-key
func (h *UserHandlers) RegenerateAPIKey(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key, err := h.users.RegenerateAPIKey(session.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to regenerate api key")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "api key regenerated successfully",
		"api_key": key,
	})
}

// APIUsage handles GET /user/api-usage
func (h *UserHandlers) APIUsage(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(session.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, user.Usage)
}
