package client

import (
	"time"

	"github.com/schemacraft/schemacraft/schema"
)

// Session holds a dashboard session token and the account it belongs to
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// User is the account shape returned by the API
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	APIKey    string    `json:"api_key"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SchemaDetail pairs a registered schema with its derived endpoints
type SchemaDetail struct {
	Schema    *schema.Schema    `json:"schema"`
	Endpoints []schema.Endpoint `json:"endpoints"`
}

// SchemaList is the response of listing schemas
type SchemaList struct {
	Schemas []*schema.Schema `json:"schemas"`
	Count   int              `json:"count"`
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// DocumentPage is one page of documents from a generated collection
type DocumentPage struct {
	Data       []map[string]interface{} `json:"data"`
	Pagination Pagination               `json:"pagination"`
}
