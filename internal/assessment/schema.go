package assessment

import "github.com/abhisek/teachme/internal/llm"

// FeedbackSchema defines the JSON schema for summary feedback.
var FeedbackSchema = &llm.Schema{
	Name:        "summary-feedback",
	Description: "Points the learner understood and points still missing from their summary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct_points": map[string]any{
				"type":        "array",
				"description": "Points the summary captured well",
				"items":       map[string]any{"type": "string"},
			},
			"missing_points": map[string]any{
				"type":        "array",
				"description": "Concepts or details to add or clarify",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"correct_points", "missing_points"},
		"additionalProperties": false,
	},
}
