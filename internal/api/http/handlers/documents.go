package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/schemacraft/schemacraft/internal/auth"
	"github.com/schemacraft/schemacraft/internal/metrics"
	"github.com/schemacraft/schemacraft/internal/storage/documents"
	"github.com/schemacraft/schemacraft/internal/storage/registry"
	"github.com/schemacraft/schemacraft/schema"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// DocumentHandlers provides HTTP handlers for the generated collection API
type DocumentHandlers struct {
	registry   *registry.Store
	documents  *documents.Store
	validator  *schema.Validator
	apiMetrics *metrics.APIMetrics
}

// NewDocumentHandlers creates new document handlers
func NewDocumentHandlers(reg *registry.Store, docs *documents.Store, validator *schema.Validator, apiMetrics *metrics.APIMetrics) *DocumentHandlers {
	return &DocumentHandlers{
		registry:   reg,
		documents:  docs,
		validator:  validator,
		apiMetrics: apiMetrics,
	}
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// resolveSchema looks up the caller's schema for the collection in the path.
// A missing or deleted schema means the generated endpoint does not exist.
func (h *DocumentHandlers) resolveSchema(w http.ResponseWriter, r *http.Request) (*schema.Schema, *auth.User, bool) {
	user, ok := auth.APIUserFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, nil, false
	}

	collection := r.PathValue("collection")
	sc, err := h.registry.GetByCollection(r.Context(), user.ID, collection)
	if err != nil {
		writeError(w, http.StatusNotFound, "schema not found for collection")
		return nil, nil, false
	}

	return sc, user, true
}

// Create handles POST /api/{collection}
func (h *DocumentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sc, user, ok := h.resolveSchema(w, r)
	if !ok {
		return
	}

	var data map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data = schema.ApplyDefaults(sc.Fields, data)

	definition, err := schema.Compile(sc.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compile schema")
		return
	}
	if err := h.validator.ValidateDocument(data, definition); err != nil {
		h.apiMetrics.RecordValidationFailure("create")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.Insert(r.Context(), user.ID, sc.CollectionName, data)
	if err != nil {
		h.apiMetrics.RecordDocumentOperation("create", "error", time.Since(start))
		writeError(w, http.StatusInternalServerError, "failed to store document")
		return
	}

	h.apiMetrics.RecordDocumentOperation("create", "success", time.Since(start))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "document created successfully",
		"id":         doc.ID,
		"created_at": doc.CreatedAt,
	})
}

// List handles GET /api/{collection}
func (h *DocumentHandlers) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sc, user, ok := h.resolveSchema(w, r)
	if !ok {
		return
	}

	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.documents.List(r.Context(), user.ID, sc.CollectionName, page, limit)
	if err != nil {
		h.apiMetrics.RecordDocumentOperation("list", "error", time.Since(start))
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	items := make([]map[string]interface{}, 0, len(result.Documents))
	for _, doc := range result.Documents {
		items = append(items, publicView(sc, doc))
	}

	total := int(result.Total)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	h.apiMetrics.RecordDocumentOperation("list", "success", time.Since(start))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": items,
		"pagination": Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// Get handles GET /api/{collection}/{id}
func (h *DocumentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sc, user, ok := h.resolveSchema(w, r)
	if !ok {
		return
	}

	doc, err := h.documents.Get(r.Context(), user.ID, sc.CollectionName, r.PathValue("id"))
	if err != nil {
		h.writeDocumentError(w, err, "get", start)
		return
	}

	h.apiMetrics.RecordDocumentOperation("get", "success", time.Since(start))

	writeJSON(w, http.StatusOK, publicView(sc, doc))
}

// Update handles PUT /api/{collection}/{id}. The payload is a partial
// update: absent fields keep their stored values.
func (h *DocumentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sc, user, ok := h.resolveSchema(w, r)
	if !ok {
		return
	}

	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch = schema.PruneUndeclared(sc.Fields, patch)

	definition, err := schema.CompilePartial(sc.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compile schema")
		return
	}
	if err := h.validator.ValidateDocument(patch, definition); err != nil {
		h.apiMetrics.RecordValidationFailure("update")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.Update(r.Context(), user.ID, sc.CollectionName, r.PathValue("id"), patch)
	if err != nil {
		h.writeDocumentError(w, err, "update", start)
		return
	}

	h.apiMetrics.RecordDocumentOperation("update", "success", time.Since(start))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "document updated successfully",
		"id":         doc.ID,
		"updated_at": doc.UpdatedAt,
	})
}

// Delete handles DELETE /api/{collection}/{id}
func (h *DocumentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	sc, user, ok := h.resolveSchema(w, r)
	if !ok {
		return
	}

	if err := h.documents.Delete(r.Context(), user.ID, sc.CollectionName, r.PathValue("id")); err != nil {
		h.writeDocumentError(w, err, "delete", start)
		return
	}

	h.apiMetrics.RecordDocumentOperation("delete", "success", time.Since(start))

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "document deleted successfully",
	})
}

func (h *DocumentHandlers) writeDocumentError(w http.ResponseWriter, err error, operation string, start time.Time) {
	var notFound documents.DocumentNotFoundError
	if errors.As(err, &notFound) {
		h.apiMetrics.RecordDocumentOperation(operation, "not_found", time.Since(start))
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	h.apiMetrics.RecordDocumentOperation(operation, "error", time.Since(start))
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// publicView renders a document for API consumers: declared public fields
// plus the id and timestamps, private fields withheld.
func publicView(sc *schema.Schema, doc *documents.Document) map[string]interface{} {
	view := schema.FilterPublic(sc.Fields, doc.Data)
	view["id"] = doc.ID
	view["created_at"] = doc.CreatedAt
	view["updated_at"] = doc.UpdatedAt
	return view
}

func parsePagination(r *http.Request) (page, limit int, err error) {
	page, limit = 1, defaultPageLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}

	return page, limit, nil
}
