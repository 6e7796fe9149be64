package documents

import "fmt"

// DocumentNotFoundError indicates a document does not exist in the
// collection, or belongs to another user.
type DocumentNotFoundError struct {
	Collection string
	ID         string
}

func (e DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document not found: %s/%s", e.Collection, e.ID)
}
