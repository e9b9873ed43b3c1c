package questionbank

import "github.com/kokeshes/wxk-check/internal/docschema"

var evidenceSchema = map[string]any{
	"type": "object",
	"propertyNames": map[string]any{
		"minLength": 1,
	},
	"additionalProperties": map[string]any{
		"type": "integer",
	},
}

// DocumentSchema defines the JSON schema for question bank documents.
var DocumentSchema = &docschema.Schema{
	Name:        "question-bank",
	Description: "Ordered yes/no questions with per-answer evidence weights",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"prompt": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"group":  map[string]any{"type": "string"},
						"on_yes": evidenceSchema,
						"on_no":  evidenceSchema,
					},
					"required":             []any{"id", "prompt"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
