package docschema

import "fmt"

// ErrInvalidDocument indicates a document that does not conform to its
// schema.
type ErrInvalidDocument struct {
	Schema string
	Err    error
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("invalid %s document: %v", e.Schema, e.Err)
}

func (e *ErrInvalidDocument) Unwrap() error { return e.Err }
