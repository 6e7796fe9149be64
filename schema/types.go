// Package schema defines the collection schema model shared by the engine
// and the client SDK: field declarations, draft validation, endpoint
// derivation, and compilation to a JSON Schema validator.
package schema

import "time"

// FieldType enumerates the declarable field types.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
	TypeDate    FieldType = "date"
)

// Valid reports whether t is a known field type.
func (t FieldType) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeBoolean, TypeArray, TypeObject, TypeDate:
		return true
	}
	return false
}

// Visibility controls whether a field is included in API responses.
type Visibility string

const (
	// VisibilityPublic fields are returned to API callers.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate fields are stored but never serialized to callers.
	VisibilityPrivate Visibility = "private"
)

// Valid reports whether v is a known visibility.
func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Field is a single declared field of a collection schema.
type Field struct {
	Name        string      `json:"name"`
	Type        FieldType   `json:"type"`
	Visibility  Visibility  `json:"visibility"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Schema is a user-declared collection definition. ID and timestamps are
// assigned by the engine on creation.
type Schema struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	CollectionName string    `json:"collection_name"`
	Fields         []Field   `json:"fields"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	IsActive       bool      `json:"is_active"`
}

// CreateRequest is the wire shape for creating a schema.
type CreateRequest struct {
	CollectionName string  `json:"collection_name"`
	Fields         []Field `json:"fields"`
}
