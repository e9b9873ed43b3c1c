package questionbank

import (
	"fmt"
	"os"

	"github.com/kokeshes/wxk-check/internal/docschema"
)

// LoadError reports a question bank file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load question bank %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type document struct {
	Questions []Question `json:"questions"`
}

// Parse decodes a YAML or JSON question bank document.
func Parse(data []byte) (*Bank, error) {
	var doc document
	if err := docschema.Decode(DocumentSchema, data, &doc); err != nil {
		return nil, err
	}
	return New(doc.Questions)
}

// Load reads and parses the question bank document at path.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	b, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return b, nil
}

// LoadOrDefault loads the bank at path, or returns Default when path is
// empty.
func LoadOrDefault(path string) (*Bank, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
