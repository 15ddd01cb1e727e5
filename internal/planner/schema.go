package planner

import "github.com/abhisek/teachme/internal/llm"

// SubtopicsSchema describes the planner's reply: a bare JSON array of
// subtopic titles. Array roots are not accepted by every vendor's native
// structured output, so the schema is enforced locally after the call.
var SubtopicsSchema = &llm.Schema{
	Name:        "subtopic-list",
	Description: "Logically sequenced subtopic titles",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type": "string",
		},
	},
}
