package problemgen

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/questions"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a new LLMGenerator with the given provider and config.
// logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// batchOutput is the raw structured LLM response before validation.
type batchOutput struct {
	Questions []itemOutput `json:"questions"`
}

type itemOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Generate produces a batch of questions for cfg.
func (g *LLMGenerator) Generate(ctx context.Context, cfg config.Config) ([]questions.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, "question-batch")

	structured := llm.SupportsStructured(g.provider)
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(cfg, structured)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}
	if structured {
		req.Schema = BatchSchema
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	raw, err := decodeBatch(resp, cfg.QuestionType)
	if err != nil {
		return nil, err
	}

	out := make([]questions.Question, 0, len(raw))
	for i, q := range raw {
		q = normalize(q, cfg.QuestionType)
		if verr := g.validate(&q, cfg); verr != nil {
			g.logger.Debug("dropping generated question",
				zap.Int("index", i),
				zap.String("validator", verr.Validator),
				zap.String("reason", verr.Message),
			)
			continue
		}
		out = append(out, q)
	}
	if len(out) > cfg.NumQuestions {
		out = out[:cfg.NumQuestions]
	}

	if dropped := len(raw) - len(out); dropped > 0 {
		g.logger.Info("question batch trimmed",
			zap.Int("received", len(raw)),
			zap.Int("kept", len(out)),
		)
	}
	return out, nil
}

func (g *LLMGenerator) validate(q *questions.Question, cfg config.Config) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(q, cfg); verr != nil {
			return verr
		}
	}
	return nil
}

// decodeBatch reads questions from either response form: plain text in
// the block format, or a structured JSON batch.
func decodeBatch(resp *llm.Response, qt config.QuestionType) ([]questions.Question, error) {
	if text, ok := resp.Text(); ok {
		return ParseTextBlocks(text, qt), nil
	}

	var batch batchOutput
	if err := json.Unmarshal(resp.Content, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	out := make([]questions.Question, len(batch.Questions))
	for i, item := range batch.Questions {
		out[i] = questions.Question{
			Text:          item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		}
	}
	return out, nil
}
