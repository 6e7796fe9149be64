package registry

import "fmt"

// SchemaNotFoundError indicates a schema was not found, is inactive, or is
// not visible to the calling user.
type SchemaNotFoundError struct {
	ID string
}

func (e SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found: %s", e.ID)
}

// CollectionExistsError indicates the user already has an active schema for
// the collection name.
type CollectionExistsError struct {
	CollectionName string
}

func (e CollectionExistsError) Error() string {
	return fmt.Sprintf("schema already exists for collection: %s", e.CollectionName)
}
