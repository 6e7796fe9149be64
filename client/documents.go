package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DocumentClient provides access to generated collection endpoints.
// Requests authenticate with the client's API key.
type DocumentClient struct {
	client *Client
}

// CreateResult is the response of inserting a document
type CreateResult struct {
	Message   string    `json:"message"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateResult is the response of updating a document
type UpdateResult struct {
	Message   string    `json:"message"`
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create inserts a document into a collection
func (d *DocumentClient) Create(ctx context.Context, collection string, data map[string]interface{}) (*CreateResult, error) {
	var result CreateResult
	if err := d.client.do(ctx, http.MethodPost, collectionPath(collection), data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns one page of documents, newest first
func (d *DocumentClient) List(ctx context.Context, collection string, page, limit int) (*DocumentPage, error) {
	path := collectionPath(collection)
	query := url.Values{}
	if page > 0 {
		query.Set("page", fmt.Sprintf("%d", page))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var result DocumentPage
	if err := d.client.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get returns a single document by ID
func (d *DocumentClient) Get(ctx context.Context, collection, id string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := d.client.do(ctx, http.MethodGet, documentPath(collection, id), nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Update applies a partial update to a document. Absent fields keep
// their stored values.
func (d *DocumentClient) Update(ctx context.Context, collection, id string, patch map[string]interface{}) (*UpdateResult, error) {
	var result UpdateResult
	if err := d.client.do(ctx, http.MethodPut, documentPath(collection, id), patch, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes a document by ID
func (d *DocumentClient) Delete(ctx context.Context, collection, id string) error {
	return d.client.do(ctx, http.MethodDelete, documentPath(collection, id), nil, nil)
}

func collectionPath(collection string) string {
	return "/api/" + url.PathEscape(collection)
}

func documentPath(collection, id string) string {
	return collectionPath(collection) + "/" + url.PathEscape(id)
}
