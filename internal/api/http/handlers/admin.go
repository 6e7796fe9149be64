package handlers

import (
	"errors"
	"net/http"

	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
)

// AdminHandlers provides HTTP handlers for platform administration
type AdminHandlers struct {
	users    *auth.Store
	registry *registry.Store
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(users *auth.Store, reg *registry.Store) *AdminHandlers {
	return &AdminHandlers{
		users:    users,
		registry: reg,
	}
}

// ListUsers handles GET /admin/users
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	all := h.users.List()

	list := make([]auth.PublicUser, 0, len(all))
	for _, u := range all {
		list = append(list, u.Public())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": list,
		"count": len(list),
	})
}

// ToggleUserStatus handles PUT /admin/users/{id}/toggle-status
func (h *AdminHandlers) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.users.GetByID(id)
	if err != nil {
		h.writeUserError(w, err)
		return
	}

	if err := h.users.SetActive(id, !user.IsActive); err != nil {
		h.writeUserError(w, err)
		return
	}

	updated, err := h.users.GetByID(id)
	if err != nil {
		h.writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "user status updated",
		"user":    updated.Public(),
	})
}

// ResetUserQuota handles POST /admin/users/{id}/reset-quota
func (h *AdminHandlers) ResetUserQuota(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.users.ResetMonthlyUsage(id); err != nil {
		h.writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "monthly usage reset",
	})
}

// Stats handles GET /admin/stats
func (h *AdminHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	userStats := h.users.Stats()
	totalSchemas, activeSchemas := h.registry.Counts()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_users":    userStats.TotalUsers,
		"active_users":   userStats.ActiveUsers,
		"total_requests": userStats.TotalRequests,
		"total_schemas":  totalSchemas,
		"active_schemas": activeSchemas,
	})
}

func (h *AdminHandlers) writeUserError(w http.ResponseWriter, err error) {
	var notFound auth.UserNotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal server error")
}
