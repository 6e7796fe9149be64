package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/schemacraft/schemacraft/schema"
)

// SchemaClient provides schema registry operations
type SchemaClient struct {
	client *Client
}

// PreviewEndpoints derives the endpoints a collection name would produce,
// without contacting the server. The derivation matches the server's.
func (s *SchemaClient) PreviewEndpoints(collectionName string) []schema.Endpoint {
	return schema.DeriveEndpoints(collectionName)
}

// ValidateDraft checks a schema draft locally using the same rules the
// server applies on Create. A nil error does not guarantee Create will
// succeed: the collection name may already be taken.
func (s *SchemaClient) ValidateDraft(collectionName string, fields []schema.Field) error {
	_, err := schema.ValidateDraft(collectionName, fields)
	return err
}

// Create registers a schema. The draft is sent as-is; the server performs
// the authoritative validation.
func (s *SchemaClient) Create(ctx context.Context, req schema.CreateRequest) (*SchemaDetail, error) {
	var detail SchemaDetail
	if err := s.client.do(ctx, http.MethodPost, "/schemas", req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// List returns the caller's active schemas
func (s *SchemaClient) List(ctx context.Context) ([]*schema.Schema, error) {
	var list SchemaList
	if err := s.client.do(ctx, http.MethodGet, "/schemas", nil, &list); err != nil {
		return nil, err
	}
	return list.Schemas, nil
}

// Get returns a schema by ID
func (s *SchemaClient) Get(ctx context.Context, id string) (*SchemaDetail, error) {
	var detail SchemaDetail
	if err := s.client.do(ctx, http.MethodGet, "/schemas/"+url.PathEscape(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Delete removes a schema by ID
func (s *SchemaClient) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, "/schemas/"+url.PathEscape(id), nil, nil)
}
