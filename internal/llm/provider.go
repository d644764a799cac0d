package llm

import (
	"context"
	"encoding/json"

	"github.com/abhisek/mathgen/internal/schema"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// StructuredReporter is implemented by providers that can tell whether a
// request Schema is enforced natively. Providers without it are assumed to
// enforce schemas.
type StructuredReporter interface {
	Structured() bool
}

// SupportsStructured reports whether p returns schema-shaped JSON for
// requests that carry a Schema, rather than plain text.
func SupportsStructured(p Provider) bool {
	if r, ok := p.(StructuredReporter); ok {
		return r.Structured()
	}
	return true
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Question batches are
	// single-turn, so this usually holds one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism
	// if it has one. Otherwise (or when nil) the response Content is the
	// raw text encoded as a JSON string.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM. The name is
// sent as the tool or schema name, e.g. "question-batch".
type Schema = schema.Schema

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. When a Schema was applied, this is
	// the validated JSON object. Otherwise it is the raw text response
	// wrapped as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// TextContent wraps plain model output as a JSON string.
func TextContent(text string) json.RawMessage {
	b, _ := json.Marshal(text)
	return b
}

// Text returns the plain text of a response whose Content is a JSON
// string. ok is false for structured (object) content.
func (r *Response) Text() (text string, ok bool) {
	if r == nil {
		return "", false
	}
	if err := json.Unmarshal(r.Content, &text); err != nil {
		return "", false
	}
	return text, true
}

// resolveModel maps a short model name to the vendor model ID. Unknown
// names are passed through as IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
