package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator validates document payloads against compiled schema definitions.
// Compiled schemas are cached by definition, so repeated writes to the same
// collection do not recompile.
type Validator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewValidator creates a new validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// ValidateDocument validates a document's data against a schema definition
// produced by Compile or CompilePartial.
func (v *Validator) ValidateDocument(data map[string]interface{}, definition []byte) error {
	compiled, err := v.compileDefinition(definition)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	// jsonschema validates the generic JSON value shapes, which data
	// already is after decoding.
	if err := compiled.Validate(toJSONValue(data)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func (v *Validator) compileDefinition(definition []byte) (*jsonschema.Schema, error) {
	cacheKey := string(definition)

	v.mu.RLock()
	if compiled, exists := v.compiled[cacheKey]; exists {
		v.mu.RUnlock()
		return compiled, nil
	}
	v.mu.RUnlock()

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(definition)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	v.mu.Lock()
	v.compiled[cacheKey] = compiled
	v.mu.Unlock()

	return compiled, nil
}

// ClearCache drops all compiled schemas.
func (v *Validator) ClearCache() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.compiled = make(map[string]*jsonschema.Schema)
}

// toJSONValue normalizes a decoded map through a JSON round trip so values
// that did not originate from encoding/json (e.g. typed defaults) validate
// the same way as wire data.
func toJSONValue(data map[string]interface{}) interface{} {
	raw, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return data
	}
	return out
}
