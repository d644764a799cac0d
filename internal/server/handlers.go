package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/questions"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Math Question Generator API"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	// num_questions may be omitted; every other field is required.
	cfg := config.Config{NumQuestions: 20}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&cfg); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := cfg.Validate(); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
		return
	}

	ctx := llm.WithPurpose(r.Context(), "question-batch")
	start := time.Now()
	qs, err := s.gen.Generate(ctx, cfg)
	if err != nil {
		s.logger.Error("question generation failed",
			zap.String("request_id", llm.RequestIDFrom(ctx)),
			zap.Int("year_level", cfg.YearLevel),
			zap.String("question_type", string(cfg.QuestionType)),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: fmt.Sprintf("Error generating questions: %v", err)})
		return
	}

	s.logger.Info("questions generated",
		zap.String("request_id", llm.RequestIDFrom(ctx)),
		zap.String("config", cfg.Summary()),
		zap.Int("requested", cfg.NumQuestions),
		zap.Int("count", len(qs)),
		zap.Duration("latency", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, questions.NewPayload(qs))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
