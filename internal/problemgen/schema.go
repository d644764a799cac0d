package problemgen

import "github.com/abhisek/mathgen/internal/llm"

// BatchSchema defines the JSON schema for LLM question batch responses.
// Every property is required so that strict structured-output modes
// accept it; free-answer questions send an empty options array.
var BatchSchema = &llm.Schema{
	Name:        "math-question-batch",
	Description: "A batch of math practice questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt shown to the student, in plain text",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 options labelled \"A) \" to \"D) \" for lettered question types. Empty array otherwise.",
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"description": "The option letter (A-D) for lettered question types, otherwise the answer itself",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief worked solution suitable for a child",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
