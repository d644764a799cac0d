package generation

import (
	"context"

	"github.com/abhisek/mathgen/internal/store"
)

// storeRecorder writes attempts to the event store.
type storeRecorder struct {
	repo store.EventRepo
}

// NewStoreRecorder returns a Recorder backed by repo.
func NewStoreRecorder(repo store.EventRepo) Recorder {
	return &storeRecorder{repo: repo}
}

func (r *storeRecorder) RecordAttempt(ctx context.Context, a Attempt) error {
	return r.repo.AppendGeneration(ctx, store.GenerationEventData{
		RequestID:     a.RequestID,
		YearLevel:     a.Config.YearLevel,
		Difficulty:    string(a.Config.Difficulty),
		QuestionType:  string(a.Config.QuestionType),
		Topic:         string(a.Config.Topic),
		NumQuestions:  a.Config.NumQuestions,
		Success:       a.Success,
		StatusCode:    a.StatusCode,
		ErrorKind:     a.ErrorKind,
		ErrorMessage:  a.Message,
		QuestionCount: a.Count,
		LatencyMs:     a.Latency.Milliseconds(),
	})
}
