package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func pupilSchema() *Schema {
	return &Schema{
		Name:        "test-pupil",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string", "minLength": 1},
				"year":  map[string]any{"type": "integer", "minimum": 1, "maximum": 6},
				"tags":  map[string]any{"type": []any{"array", "null"}, "items": map[string]any{"type": "string"}},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "year"},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"name":"Ada","year":3,"grade":"A"}`, false},
		{"optional omitted", `{"name":"Ada","year":3}`, false},
		{"null array allowed", `{"name":"Ada","year":3,"tags":null}`, false},
		{"extra properties allowed", `{"name":"Ada","year":3,"club":"chess"}`, false},
		{"missing required", `{"name":"Ada"}`, true},
		{"empty name", `{"name":"","year":3}`, true},
		{"wrong type", `{"name":"Ada","year":"three"}`, true},
		{"out of range", `{"name":"Ada","year":9}`, true},
		{"bad enum", `{"name":"Ada","year":3,"grade":"Z"}`, true},
		{"not json", `not json`, true},
		{"top-level array", `[]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pupilSchema().Validate(json.RawMessage(tt.raw))
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if verr.Schema != "test-pupil" {
					t.Errorf("Schema = %q", verr.Schema)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_NilSchema(t *testing.T) {
	var s *Schema
	if err := s.Validate(json.RawMessage(`anything`)); err != nil {
		t.Errorf("nil schema should accept anything, got %v", err)
	}
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	s := pupilSchema()
	if err := s.Validate(json.RawMessage(`{"name":"Ada","year":1}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := compiledCache.Load(s.Name); !ok {
		t.Error("expected compiled schema to be cached")
	}
}
