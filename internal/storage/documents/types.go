package documents

import "time"

// Document is a stored record in a generated collection. Data holds the
// declared fields only; visibility filtering happens at the API layer
// because the full document is needed server-side.
type Document struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// Page is one page of a collection listing.
type Page struct {
	Documents []*Document
	Total     int64
}
