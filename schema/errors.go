package schema

import "fmt"

// ValidationKind identifies why a draft was rejected.
type ValidationKind string

const (
	KindEmptyCollectionName ValidationKind = "empty_collection_name"
	KindInvalidIdentifier   ValidationKind = "invalid_identifier"
	KindNoFields            ValidationKind = "no_fields"
	KindMissingFieldName    ValidationKind = "missing_field_name"
	KindDuplicateFieldName  ValidationKind = "duplicate_field_name"
	KindInvalidFieldType    ValidationKind = "invalid_field_type"
	KindInvalidVisibility   ValidationKind = "invalid_visibility"
	KindDefaultTypeMismatch ValidationKind = "default_type_mismatch"
)

// ValidationError indicates a schema draft failed local validation.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid schema draft (%s): field %q: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid schema draft (%s): %s", e.Kind, e.Reason)
}

// Is allows errors.Is comparisons against a bare kind.
func (e ValidationError) Is(target error) bool {
	t, ok := target.(ValidationError)
	return ok && t.Kind == e.Kind && t.Field == "" && t.Reason == ""
}
