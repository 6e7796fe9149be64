package schema

import "net/http"

// Endpoint is one generated REST route for a collection.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// DeriveEndpoints returns the canonical generated API surface for a
// collection name: always four entries, in fixed order. It is a pure
// function of the name and is used both for the live engine routes and for
// pre-creation previews, so the two can never diverge.
func DeriveEndpoints(collectionName string) []Endpoint {
	base := "/api/" + collectionName
	return []Endpoint{
		{Method: http.MethodGet, Path: base},
		{Method: http.MethodPost, Path: base},
		{Method: http.MethodPut, Path: base + "/:id"},
		{Method: http.MethodDelete, Path: base + "/:id"},
	}
}
