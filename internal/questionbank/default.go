package questionbank

import (
	_ "embed"
	"fmt"
)

//go:embed questions.yaml
var defaultDocument []byte

var defaultBank *Bank

func init() {
	b, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("questionbank: embedded questions.yaml: %v", err))
	}
	defaultBank = b
}

// Default returns the built-in question bank.
func Default() *Bank {
	return defaultBank
}

// DefaultDocument returns the raw built-in question bank document.
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}
