package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/llm"
)

func testConfig(qt config.QuestionType, n int) config.Config {
	cfg := config.Default()
	cfg.QuestionType = qt
	cfg.NumQuestions = n
	return cfg
}

func mcBatchJSON() json.RawMessage {
	return json.RawMessage(`{"questions": [
		{
			"question": "What is 6 x 7?",
			"options": ["A) 42", "B) 36", "C) 48", "D) 13"],
			"correct_answer": "A",
			"explanation": "6 groups of 7 make 42."
		},
		{
			"question": "Which number is even?",
			"options": ["3", "5", "8", "9"],
			"correct_answer": "8",
			"explanation": "8 can be split into two equal groups."
		},
		{
			"question": "Broken item with three options",
			"options": ["A) 1", "B) 2", "C) 3"],
			"correct_answer": "A",
			"explanation": ""
		}
	]}`)
}

func TestGenerate_Structured(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: mcBatchJSON()})
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testConfig(config.TypeMultipleChoice, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions after dropping the malformed one, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "A" {
		t.Errorf("expected answer A, got %q", qs[0].CorrectAnswer)
	}
	// Unlabelled options gain labels and a text answer resolves to its letter.
	if qs[1].Options[2] != "C) 8" {
		t.Errorf("expected labelled option, got %q", qs[1].Options[2])
	}
	if qs[1].CorrectAnswer != "C" {
		t.Errorf("expected answer C, got %q", qs[1].CorrectAnswer)
	}

	req := mock.Calls[0]
	if req.Schema != BatchSchema {
		t.Error("structured providers should receive the batch schema")
	}
	if req.MaxTokens != 4000 || req.Temperature != 0.7 {
		t.Errorf("unexpected sampling settings: %d, %v", req.MaxTokens, req.Temperature)
	}
	if !strings.Contains(req.Messages[0].Content, "option letter") {
		t.Error("structured prompt should ask for option letters")
	}
}

func TestGenerate_PlainText(t *testing.T) {
	text := `Q: What is 5 + 4?
Answer: 9
Explanation: 5 + 4 = 9.
---
Q: What is 10 - 3?
Answer: 6
Explanation: Wrong on purpose.
---
Q: A question without an answer
---`
	mock := llm.NewMockProvider(llm.MockResponse{Content: llm.TextContent(text)})
	mock.PlainText = true
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testConfig(config.TypeNumerical, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The second block fails the math check and the third has no answer.
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d: %+v", len(qs), qs)
	}
	if qs[0].Text != "What is 5 + 4?" || qs[0].CorrectAnswer != "9" {
		t.Errorf("unexpected question: %+v", qs[0])
	}
	if qs[0].Options != nil {
		t.Errorf("numerical questions have no options, got %v", qs[0].Options)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("plain-text providers must not receive a schema")
	}
	if !strings.Contains(req.Messages[0].Content, "Format EXACTLY") {
		t.Error("plain-text prompt should describe the block format")
	}
}

func TestGenerate_TruncatesToRequestedCount(t *testing.T) {
	var b strings.Builder
	for range 7 {
		b.WriteString("Q: How many legs does a cat have?\nAnswer: 4 legs\nExplanation: Cats walk on four legs.\n---\n")
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: llm.TextContent(b.String())})
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testConfig(config.TypeProblemSolving, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(qs))
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.Error{Kind: llm.KindRateLimit, StatusCode: 429}})
	gen := New(mock, DefaultConfig(), nil)

	_, err := gen.Generate(context.Background(), testConfig(config.TypeNumerical, 5))
	if err == nil {
		t.Fatal("expected error")
	}
	if llm.KindOf(err) != llm.KindRateLimit {
		t.Fatalf("expected wrapped rate limit, got %T (%v)", err, err)
	}
}

func TestGenerate_UnparseableStructuredResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`[1, 2, 3]`)})
	gen := New(mock, DefaultConfig(), nil)

	if _, err := gen.Generate(context.Background(), testConfig(config.TypeNumerical, 5)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	mock := llm.NewMockProvider()
	gen := New(mock, DefaultConfig(), nil)

	cfg := config.Default()
	cfg.YearLevel = 9
	_, err := gen.Generate(context.Background(), cfg)
	var ce *config.CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CoercionError, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("provider should not be called for an invalid config")
	}
}

func TestGenerate_ComparisonGetsFixedOptions(t *testing.T) {
	text := `Q: Compare Quantity A and Quantity B. Which is greater?
Quantity A: 3 x 4
Quantity B: 10
A) Quantity A is greater
B) Quantity B is greater
C) They are equal
D) Cannot be determined
Answer: A
Explanation: 3 x 4 = 12, which is more than 10.
---`
	mock := llm.NewMockProvider(llm.MockResponse{Content: llm.TextContent(text)})
	gen := New(mock, DefaultConfig(), nil)

	qs, err := gen.Generate(context.Background(), testConfig(config.TypeComparison, 5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
	want := "Compare Quantity A and Quantity B.\nQuantity A: 3 x 4\nQuantity B: 10"
	if qs[0].Text != want {
		t.Errorf("text = %q, want %q", qs[0].Text, want)
	}
	if len(qs[0].Options) != 4 || qs[0].Options[3] != "D) Cannot be determined" {
		t.Errorf("unexpected options: %v", qs[0].Options)
	}
}
