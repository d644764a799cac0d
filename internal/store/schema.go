package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repos and the migrator.
const (
	generationEventsTable = "generation_events"
	llmRequestEventsTable = "llm_request_events"

	colID        = "id"
	colSequence  = "sequence"
	colTimestamp = "timestamp"
)

// eventColumns returns the base columns every event table carries: an
// auto-increment id, the global sequence and a UTC timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: colID, Type: field.TypeInt, Increment: true},
		{Name: colSequence, Type: field.TypeInt64, Unique: true, Comment: "Monotonically increasing global sequence number"},
		{Name: colTimestamp, Type: field.TypeTime, Comment: "UTC wall-clock time of the event"},
	}
}

var (
	generationEventsColumns = append(eventColumns(),
		&schema.Column{Name: "request_id", Type: field.TypeString},
		&schema.Column{Name: "year_level", Type: field.TypeInt},
		&schema.Column{Name: "difficulty", Type: field.TypeString},
		&schema.Column{Name: "question_type", Type: field.TypeString},
		&schema.Column{Name: "topic", Type: field.TypeString},
		&schema.Column{Name: "num_questions", Type: field.TypeInt},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "status_code", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "error_kind", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "question_count", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
	)

	// GenerationEventsTable records one row per generate attempt.
	GenerationEventsTable = &schema.Table{
		Name:       generationEventsTable,
		Columns:    generationEventsColumns,
		PrimaryKey: []*schema.Column{generationEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "generationevent_sequence", Columns: []*schema.Column{generationEventsColumns[1]}},
			{Name: "generationevent_timestamp", Columns: []*schema.Column{generationEventsColumns[2]}},
			{Name: "generationevent_request_id", Columns: []*schema.Column{generationEventsColumns[3]}},
		},
	}

	llmRequestEventsColumns = append(eventColumns(),
		&schema.Column{Name: "request_id", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
	)

	// LLMRequestEventsTable records one row per LLM API call made by the
	// generator service.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    llmRequestEventsColumns,
		PrimaryKey: []*schema.Column{llmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_sequence", Columns: []*schema.Column{llmRequestEventsColumns[1]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmRequestEventsColumns[6]}},
		},
	}

	// Tables holds every table the store migrates.
	Tables = []*schema.Table{
		GenerationEventsTable,
		LLMRequestEventsTable,
	}
)
