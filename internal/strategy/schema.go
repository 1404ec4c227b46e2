package strategy

import "github.com/pcanas/mentat/internal/llm"

// TutorResponseSchema defines the JSON schema for tutoring responses.
var TutorResponseSchema = &llm.Schema{
	Name:        "tutor-response",
	Description: "A pedagogically shaped response to a programming student",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{
				"type":        "string",
				"description": "The tutor's reply, shaped by the requested strategy",
			},
			"follow_up_questions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "0-3 short questions prompting the student's next step",
			},
		},
		"required":             []any{"response", "follow_up_questions"},
		"additionalProperties": false,
	},
}
