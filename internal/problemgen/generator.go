package problemgen

import (
	"context"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// Generator produces a batch of math questions for a configuration.
type Generator interface {
	// Generate returns at most cfg.NumQuestions questions. Items that fail
	// validation are dropped, so the batch may be shorter than requested.
	Generate(ctx context.Context, cfg config.Config) ([]questions.Question, error)
}
