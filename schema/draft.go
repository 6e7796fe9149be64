package schema

// ValidateDraft validates an unsaved schema draft before submission and
// returns the fields normalized: visibility defaults to public, required
// defaults to false. The engine runs the same checks on create, so passing
// here is a UX gate, not a security boundary.
func ValidateDraft(collectionName string, fields []Field) ([]Field, error) {
	if collectionName == "" {
		return nil, ValidationError{Kind: KindEmptyCollectionName, Reason: "collection name cannot be empty"}
	}
	if !ValidIdentifier(collectionName) {
		return nil, ValidationError{Kind: KindInvalidIdentifier, Reason: "collection name must be a valid identifier"}
	}
	if len(fields) == 0 {
		return nil, ValidationError{Kind: KindNoFields, Reason: "schema must declare at least one field"}
	}

	seen := make(map[string]bool, len(fields))
	normalized := make([]Field, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return nil, ValidationError{Kind: KindMissingFieldName, Reason: "field name cannot be empty"}
		}
		if !ValidIdentifier(f.Name) {
			return nil, ValidationError{Kind: KindInvalidIdentifier, Field: f.Name, Reason: "field name must be a valid identifier"}
		}
		if seen[f.Name] {
			return nil, ValidationError{Kind: KindDuplicateFieldName, Field: f.Name, Reason: "field name declared twice"}
		}
		seen[f.Name] = true

		if !f.Type.Valid() {
			return nil, ValidationError{Kind: KindInvalidFieldType, Field: f.Name, Reason: "unknown field type: " + string(f.Type)}
		}
		if f.Visibility == "" {
			f.Visibility = VisibilityPublic
		}
		if !f.Visibility.Valid() {
			return nil, ValidationError{Kind: KindInvalidVisibility, Field: f.Name, Reason: "visibility must be public or private"}
		}
		if f.Default != nil && !defaultMatchesType(f.Type, f.Default) {
			return nil, ValidationError{Kind: KindDefaultTypeMismatch, Field: f.Name, Reason: "default value does not match field type"}
		}
		normalized[i] = f
	}

	return normalized, nil
}

// defaultMatchesType checks a default value against the declared type using
// the JSON value shapes produced by encoding/json.
func defaultMatchesType(t FieldType, v interface{}) bool {
	switch t {
	case TypeString, TypeDate:
		_, ok := v.(string)
		return ok
	case TypeNumber:
		switch v.(type) {
		case float64, float32, int, int32, int64:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := v.(bool)
		return ok
	case TypeArray:
		_, ok := v.([]interface{})
		return ok
	case TypeObject:
		_, ok := v.(map[string]interface{})
		return ok
	}
	return false
}
