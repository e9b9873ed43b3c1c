package catalog

import (
	_ "embed"
	"fmt"
)

//go:embed catalog.yaml
var defaultDocument []byte

// defaultCatalog is the built-in catalog, parsed once at init.
var defaultCatalog *Catalog

func init() {
	c, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.yaml: %v", err))
	}
	defaultCatalog = c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// DefaultDocument returns the raw built-in catalog document, for use as a
// template when writing a custom catalog.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}
