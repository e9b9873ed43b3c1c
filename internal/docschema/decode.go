package docschema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Decode parses data as YAML (a superset of JSON), validates it against
// schema and decodes it into out. out must be a pointer to a type with json
// tags; the document is round-tripped through JSON so that validation and
// decoding see exactly the same value.
func Decode(schema *Schema, data []byte, out any) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	raw, err := nodeValue(&root)
	if err != nil {
		return &ErrInvalidDocument{Schema: schemaName(schema), Err: err}
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return fmt.Errorf("reparse document: %w", err)
	}

	if err := Validate(schema, parsed); err != nil {
		return err
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

// nodeValue converts a YAML node into plain Go values. Mapping keys keep
// their source text, so a key written as 001 stays "001" instead of being
// resolved as a number.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[k.Value] = v
		}
		return out, nil
	case yaml.SequenceNode:
		out := make([]any, len(n.Content))
		for i, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

func schemaName(s *Schema) string {
	if s == nil {
		return ""
	}
	return s.Name
}
