package catalog

import (
	"fmt"
	"os"

	"github.com/kokeshes/wxk-check/internal/docschema"
)

// LoadError reports a catalog file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type document struct {
	Conditions []Condition `json:"conditions"`
}

// Parse decodes a YAML or JSON catalog document. Codes must be strings;
// quote numeric-looking codes such as "001" in YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := docschema.Decode(DocumentSchema, data, &doc); err != nil {
		return nil, err
	}
	return New(doc.Conditions)
}

// Load reads and parses the catalog document at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	c, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return c, nil
}

// LoadOrDefault loads the catalog at path, or returns Default when path is
// empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
