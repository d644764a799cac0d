package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var generationEventColumns = []string{
	colID, colSequence, colTimestamp,
	"request_id", "year_level", "difficulty", "question_type", "topic", "num_questions",
	"success", "status_code", "error_kind", "error_message", "question_count", "latency_ms",
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(generationEventsTable).
		Columns(generationEventColumns[1:]...).
		Values(
			seqNum, time.Now().UTC(),
			data.RequestID, data.YearLevel, data.Difficulty, data.QuestionType, data.Topic, data.NumQuestions,
			data.Success, data.StatusCode, data.ErrorKind, data.ErrorMessage, data.QuestionCount, data.LatencyMs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(generationEventColumns...).
		From(entsql.Table(generationEventsTable))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var out []GenerationEvent
	for rows.Next() {
		var e GenerationEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp,
			&e.RequestID, &e.YearLevel, &e.Difficulty, &e.QuestionType, &e.Topic, &e.NumQuestions,
			&e.Success, &e.StatusCode, &e.ErrorKind, &e.ErrorMessage, &e.QuestionCount, &e.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("scan generation event: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generation events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GenerationStats(ctx context.Context) (GenerationStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			entsql.Count("*"),
			entsql.Sum("success"),
			entsql.Sum("question_count"),
			entsql.Avg("latency_ms"),
		).
		From(entsql.Table(generationEventsTable)).
		Query()

	var (
		total     int
		succeeded sql.NullInt64
		questions sql.NullInt64
		latency   sql.NullFloat64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total, &succeeded, &questions, &latency); err != nil {
		return GenerationStats{}, fmt.Errorf("query generation stats: %w", err)
	}

	return GenerationStats{
		Total:        total,
		Succeeded:    int(succeeded.Int64),
		Failed:       total - int(succeeded.Int64),
		Questions:    int(questions.Int64),
		AvgLatencyMs: int64(latency.Float64),
	}, nil
}

// applyQueryOpts adds the filters and pagination in opts to sel. Results are
// always ordered newest first.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc(colSequence))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
