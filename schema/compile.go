package schema

import (
	"encoding/json"
	"fmt"
)

// Compile converts declared fields into a JSON Schema definition used to
// validate write requests. Required fields are enforced and undeclared
// fields are rejected. The mapping is deterministic: the same fields always
// produce the same definition bytes.
func Compile(fields []Field) ([]byte, error) {
	return compile(fields, true)
}

// CompilePartial is Compile without the required list, used for partial
// updates where absent fields are left untouched.
func CompilePartial(fields []Field) ([]byte, error) {
	return compile(fields, false)
}

func compile(fields []Field, withRequired bool) ([]byte, error) {
	properties := make(map[string]interface{}, len(fields))
	var required []string

	for _, f := range fields {
		if f.Name == "" {
			return nil, ValidationError{Kind: KindMissingFieldName, Reason: "field name cannot be empty"}
		}
		prop, err := propertySchema(f.Type)
		if err != nil {
			return nil, ValidationError{Kind: KindInvalidFieldType, Field: f.Name, Reason: err.Error()}
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		properties[f.Name] = prop
		if withRequired && f.Required {
			required = append(required, f.Name)
		}
	}

	definition := map[string]interface{}{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		definition["required"] = required
	}

	return json.Marshal(definition)
}

func propertySchema(t FieldType) (map[string]interface{}, error) {
	switch t {
	case TypeString:
		return map[string]interface{}{"type": "string"}, nil
	case TypeNumber:
		return map[string]interface{}{"type": "number"}, nil
	case TypeBoolean:
		return map[string]interface{}{"type": "boolean"}, nil
	case TypeArray:
		return map[string]interface{}{"type": "array"}, nil
	case TypeObject:
		return map[string]interface{}{"type": "object"}, nil
	case TypeDate:
		return map[string]interface{}{"type": "string", "format": "date-time"}, nil
	}
	return nil, fmt.Errorf("unknown field type: %s", t)
}

// ApplyDefaults fills absent optional fields that declare a default value.
// Declared fields only; undeclared keys in data are left for the validator
// to reject.
func ApplyDefaults(fields []Field, data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, f := range fields {
		if _, ok := out[f.Name]; !ok && !f.Required && f.Default != nil {
			out[f.Name] = f.Default
		}
	}
	return out
}

// FilterPublic returns only the public declared fields of a stored document.
func FilterPublic(fields []Field, data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range fields {
		if f.Visibility != VisibilityPublic {
			continue
		}
		if v, ok := data[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}

// PruneUndeclared keeps only keys that correspond to declared fields. Used
// for partial updates, where unknown keys are dropped rather than rejected.
func PruneUndeclared(fields []Field, data map[string]interface{}) map[string]interface{} {
	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		declared[f.Name] = true
	}
	out := make(map[string]interface{})
	for k, v := range data {
		if declared[k] {
			out[k] = v
		}
	}
	return out
}
