package llm_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abhisek/mathgen/internal/llm"
	"github.com/abhisek/mathgen/internal/problemgen"
)

// geminiServer fakes generateContent and records the last request body.
func geminiServer(t *testing.T, status int, reply, finish string) (*llm.GeminiProvider, *string) {
	t.Helper()
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": status, "message": "quota exhausted", "status": "RESOURCE_EXHAUSTED"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": reply}}},
				"finishReason": finish,
			}},
			"usageMetadata": map[string]any{"promptTokenCount": 300, "candidatesTokenCount": 120, "totalTokenCount": 420},
		})
	}))
	t.Cleanup(server.Close)

	p, err := llm.NewGeminiProvider(context.Background(), llm.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatal(err)
	}
	return p, &got
}

func TestGemini_GeneratesQuestionBatch(t *testing.T) {
	p, got := geminiServer(t, http.StatusOK, additionBatch, "STOP")
	if p.ModelID() != "gemini-2.0-flash" {
		t.Fatalf("short model name not resolved: %q", p.ModelID())
	}

	qs, err := problemgen.New(p, problemgen.DefaultConfig(), nil).Generate(context.Background(), numericalConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 || qs[1].CorrectAnswer != "17" {
		t.Fatalf("unexpected questions: %+v", qs)
	}

	// The batch schema is converted to Gemini's schema dialect.
	for _, want := range []string{`"correct_answer"`, `"ARRAY"`, "application/json"} {
		if !strings.Contains(*got, want) {
			t.Errorf("request body missing %s", want)
		}
	}
}

func TestGemini_TruncatedBatch(t *testing.T) {
	p, _ := geminiServer(t, http.StatusOK, `{"questions":[{"quest`, "MAX_TOKENS")

	_, err := p.Generate(context.Background(), llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Generate 20 questions."}},
		Schema:    problemgen.BatchSchema,
		MaxTokens: 64,
	})
	if llm.KindOf(err) != llm.KindTruncated {
		t.Fatalf("expected truncated batch, got %v", err)
	}
}

func TestGemini_PlainTextBatch(t *testing.T) {
	text := "Q: What is 3 + 4?\nAnswer: 7\nExplanation: Count on 4 from 3.\n---"
	p, _ := geminiServer(t, http.StatusOK, text, "STOP")

	resp, err := p.Generate(context.Background(), llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Generate 5 questions."}},
		MaxTokens: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := resp.Text(); !ok || got != text {
		t.Fatalf("unexpected text %q (ok=%v)", got, ok)
	}
	if resp.Usage.TotalTokens != 420 {
		t.Errorf("expected usage to be mapped, got %+v", resp.Usage)
	}
}

func TestGemini_RateLimited(t *testing.T) {
	p, _ := geminiServer(t, http.StatusTooManyRequests, "", "")

	_, err := p.Generate(context.Background(), llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Generate 5 questions."}},
		MaxTokens: 100,
	})
	if llm.KindOf(err) != llm.KindRateLimit {
		t.Fatalf("expected rate limit, got %v", err)
	}
}
