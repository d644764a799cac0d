// Package schema validates JSON documents against JSON Schema definitions.
// It is shared by the backend client (response payloads) and the LLM layer
// (structured output).
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema defines an expected JSON structure.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "question-batch".
	// Compiled schemas are cached by name, so names must be unique.
	Name string

	// Description is a human-readable description, also sent to LLMs.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// ValidationError reports a document that is not JSON or does not conform
// to its schema.
type ValidationError struct {
	Schema  string
	Content json.RawMessage
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Schema, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// compiledCache caches compiled schemas by name.
var compiledCache sync.Map // map[string]*jsonschema.Schema

// Validate checks raw against s. A nil schema accepts anything.
// Returns *ValidationError on failure.
func (s *Schema) Validate(raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ValidationError{Schema: s.Name, Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := s.compile()
	if err != nil {
		return &ValidationError{Schema: s.Name, Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{Schema: s.Name, Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

// compile returns the cached compiled schema or compiles and caches it.
func (s *Schema) compile() (*jsonschema.Schema, error) {
	if cached, ok := compiledCache.Load(s.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", s.Name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiledCache.Store(s.Name, compiled)
	return compiled, nil
}
