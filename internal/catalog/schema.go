package catalog

import "github.com/kokeshes/wxk-check/internal/docschema"

// DocumentSchema defines the JSON schema for catalog documents.
var DocumentSchema = &docschema.Schema{
	Name:        "condition-catalog",
	Description: "Registry of condition codes with severity tier and quick action",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"conditions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"code": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"name": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"severity": map[string]any{
							"type": "string",
							"enum": []any{"Critical", "High", "Med", "Info"},
						},
						"quick":  map[string]any{"type": "string"},
						"benign": map[string]any{"type": "boolean"},
						"domain": map[string]any{"type": "string"},
						"tags": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []any{"code", "name", "severity", "quick"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"conditions"},
		"additionalProperties": false,
	},
}
