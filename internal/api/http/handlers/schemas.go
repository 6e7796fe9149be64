package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/metrics"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
	"github.com/schemacraft/schemacraft/schema"
)

// SchemaHandlers provides HTTP handlers for schema registry operations
type SchemaHandlers struct {
	registry   *registry.Store
	apiMetrics *metrics.APIMetrics
}

// NewSchemaHandlers creates new schema handlers
func NewSchemaHandlers(reg *registry.Store, apiMetrics *metrics.APIMetrics) *SchemaHandlers {
	return &SchemaHandlers{
		registry:   reg,
		apiMetrics: apiMetrics,
	}
}

// SchemaResponse represents a registered schema with its derived endpoints
type SchemaResponse struct {
	Schema    *schema.Schema    `json:"schema"`
	Endpoints []schema.Endpoint `json:"endpoints"`
}

// Create handles POST /schemas
func (h *SchemaHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req schema.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.registry.Create(r.Context(), session.UserID, req)
	if err != nil {
		var validationErr schema.ValidationError
		var existsErr registry.CollectionExistsError
		switch {
		case errors.As(err, &validationErr):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &existsErr):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create schema")
		}
		return
	}

	h.apiMetrics.RecordSchemaCreated()

	writeJSON(w, http.StatusCreated, SchemaResponse{
		Schema:    created,
		Endpoints: schema.DeriveEndpoints(created.CollectionName),
	})
}

// List handles GET /schemas
func (h *SchemaHandlers) List(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	schemas := h.registry.List(r.Context(), session.UserID)
	if schemas == nil {
		schemas = []*schema.Schema{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schemas": schemas,
		"count":   len(schemas),
	})
}

// Get handles GET /schemas/{id}
func (h *SchemaHandlers) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	found, err := h.registry.Get(r.Context(), session.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}

	writeJSON(w, http.StatusOK, SchemaResponse{
		Schema:    found,
		Endpoints: schema.DeriveEndpoints(found.CollectionName),
	})
}

// Endpoints handles GET /schemas/{id}/endpoints
func (h *SchemaHandlers) Endpoints(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	found, err := h.registry.Get(r.Context(), session.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collection_name": found.CollectionName,
		"endpoints":       schema.DeriveEndpoints(found.CollectionName),
	})
}

// Delete handles DELETE /schemas/{id}
func (h *SchemaHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.registry.Delete(r.Context(), session.UserID, r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "schema not found")
		return
	}

	h.apiMetrics.RecordSchemaDeleted()

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "schema deleted successfully",
	})
}
