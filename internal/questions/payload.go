package questions

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/mathgen/internal/schema"
)

// Payload is the success body of the generate endpoint.
type Payload struct {
	Questions []Question `json:"questions"`
	Count     int        `json:"count"`
}

// NewPayload wraps qs for the wire, filling Count.
func NewPayload(qs []Question) Payload {
	if qs == nil {
		qs = []Question{}
	}
	return Payload{Questions: qs, Count: len(qs)}
}

// PayloadSchema describes an acceptable generate response. Optional fields
// may be absent or null; unknown fields are ignored.
var PayloadSchema = &schema.Schema{
	Name:        "question-payload",
	Description: "A batch of generated math questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"options": map[string]any{
							"type":  []any{"array", "null"},
							"items": map[string]any{"type": "string"},
						},
						"correct_answer": map[string]any{
							"type": "string",
						},
						"explanation": map[string]any{
							"type": []any{"string", "null"},
						},
					},
					"required": []any{"question", "correct_answer"},
				},
			},
			"count": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
		},
		"required": []any{"questions"},
	},
}

// Decode validates body against PayloadSchema and returns its questions.
// Any shape mismatch returns a *schema.ValidationError.
func Decode(body []byte) ([]Question, error) {
	if err := PayloadSchema.Validate(body); err != nil {
		return nil, err
	}
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return p.Questions, nil
}
