package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// GenerationEventData captures one generate attempt as seen by the client.
// Questions themselves are never stored.
type GenerationEventData struct {
	RequestID     string
	YearLevel     int
	Difficulty    string
	QuestionType  string
	Topic         string
	NumQuestions  int
	Success       bool
	StatusCode    int // 0 when no HTTP response was received
	ErrorKind     string
	ErrorMessage  string
	QuestionCount int
	LatencyMs     int64
}

// GenerationEvent is a stored generate attempt.
type GenerationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GenerationEventData
}

// GenerationStats summarises stored attempts.
type GenerationStats struct {
	Total        int
	Succeeded    int
	Failed       int
	Questions    int
	AvgLatencyMs int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// ModelUsage aggregates LLM requests per provider and model.
type ModelUsage struct {
	Provider     string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendGeneration records a generate attempt.
	AppendGeneration(ctx context.Context, data GenerationEventData) error

	// QueryGenerations returns attempts newest first.
	QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error)

	// GenerationStats aggregates every stored attempt.
	GenerationStats(ctx context.Context) (GenerationStats, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns LLM request events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByModel aggregates token usage per provider and model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
