// Package docschema validates declarative YAML/JSON documents against JSON
// schemas before they are decoded into typed values.
package docschema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON schema definition.
type Schema struct {
	// Name identifies this schema in error messages and the compile cache.
	// Kebab-case, e.g. "condition-catalog".
	Name string

	// Description is a human-readable summary of the document shape.
	Description string

	// Definition is the JSON Schema as a Go map.
	Definition map[string]any
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// Validate checks a parsed document against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *ErrInvalidDocument on failure.
func Validate(schema *Schema, doc any) error {
	if schema == nil {
		return nil
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return &ErrInvalidDocument{
			Schema: schema.Name,
			Err:    fmt.Errorf("compile schema: %w", err),
		}
	}

	if err := compiled.Validate(doc); err != nil {
		return &ErrInvalidDocument{
			Schema: schema.Name,
			Err:    err,
		}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not Go maps
	// with arbitrary value types.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
