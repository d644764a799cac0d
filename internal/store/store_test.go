package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"generation_events", "llm_request_events", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.EventRepo().AppendGeneration(ctx, GenerationEventData{RequestID: "a", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	events, err := s.EventRepo().QueryGenerations(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].RequestID != "a" {
		t.Fatalf("expected the stored event after reopen, got %+v", events)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAppendAndQueryGenerations(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	in := GenerationEventData{
		RequestID:     "req-1",
		YearLevel:     3,
		Difficulty:    "medium",
		QuestionType:  "multiple_choice",
		Topic:         "arithmetic",
		NumQuestions:  20,
		Success:       true,
		QuestionCount: 20,
		LatencyMs:     1200,
	}
	if err := repo.AppendGeneration(ctx, in); err != nil {
		t.Fatalf("append: %v", err)
	}

	failed := GenerationEventData{
		RequestID:    "req-2",
		YearLevel:    5,
		Difficulty:   "hard",
		QuestionType: "numerical",
		Topic:        "geometry",
		NumQuestions: 5,
		StatusCode:   500,
		ErrorKind:    "status",
		ErrorMessage: "backend returned HTTP 500",
		LatencyMs:    300,
	}
	if err := repo.AppendGeneration(ctx, failed); err != nil {
		t.Fatalf("append failed attempt: %v", err)
	}

	events, err := repo.QueryGenerations(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	// Newest first.
	if events[0].GenerationEventData != failed {
		t.Errorf("events[0] = %+v, want %+v", events[0].GenerationEventData, failed)
	}
	if events[1].GenerationEventData != in {
		t.Errorf("events[1] = %+v, want %+v", events[1].GenerationEventData, in)
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Errorf("sequence not increasing: %d then %d", events[1].Sequence, events[0].Sequence)
	}
	if time.Since(events[0].Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", events[0].Timestamp)
	}
}

func TestQueryGenerationsOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendGeneration(ctx, GenerationEventData{RequestID: string(rune('a' + i))}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"all", QueryOpts{}, []string{"e", "d", "c", "b", "a"}},
		{"limit", QueryOpts{Limit: 2}, []string{"e", "d"}},
		{"after", QueryOpts{After: 3}, []string{"e", "d"}},
		{"before", QueryOpts{Before: 3}, []string{"b", "a"}},
		{"window", QueryOpts{After: 1, Before: 5, Limit: 2}, []string{"d", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryGenerations(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var got []string
			for _, e := range events {
				got = append(got, e.RequestID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestGenerationStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	stats, err := repo.GenerationStats(ctx)
	if err != nil {
		t.Fatalf("stats (empty): %v", err)
	}
	if stats != (GenerationStats{}) {
		t.Errorf("empty stats = %+v", stats)
	}

	data := []GenerationEventData{
		{Success: true, QuestionCount: 10, LatencyMs: 100},
		{Success: true, QuestionCount: 5, LatencyMs: 200},
		{Success: false, StatusCode: 500, LatencyMs: 300},
	}
	for _, d := range data {
		if err := repo.AppendGeneration(ctx, d); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	stats, err = repo.GenerationStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := GenerationStats{Total: 3, Succeeded: 2, Failed: 1, Questions: 15, AvgLatencyMs: 200}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestLLMRequestEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	in := LLMRequestEventData{
		RequestID:    "req-1",
		Provider:     "openai",
		Model:        "deepseek-chat",
		Purpose:      "question-batch",
		InputTokens:  812,
		OutputTokens: 2048,
		LatencyMs:    4100,
		Success:      true,
	}
	if err := repo.AppendLLMRequest(ctx, in); err != nil {
		t.Fatalf("append: %v", err)
	}
	// Generation and LLM events share one sequence.
	if err := repo.AppendGeneration(ctx, GenerationEventData{RequestID: "req-1", Success: true}); err != nil {
		t.Fatalf("append generation: %v", err)
	}

	events, err := repo.QueryLLMRequests(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].LLMRequestEventData != in {
		t.Errorf("event = %+v, want %+v", events[0].LLMRequestEventData, in)
	}

	gens, err := repo.QueryGenerations(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query generations: %v", err)
	}
	if gens[0].Sequence <= events[0].Sequence {
		t.Errorf("generation sequence %d should follow LLM sequence %d", gens[0].Sequence, events[0].Sequence)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("MATHGEN_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
		if _, err := os.Stat(filepath.Dir(want)); err != nil {
			t.Errorf("parent dir not created: %v", err)
		}
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv("MATHGEN_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(dir, "mathgen", "mathgen.db"); got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "deepseek", Model: "deepseek-chat", InputTokens: 100, OutputTokens: 400, LatencyMs: 1000, Success: true},
		{Provider: "deepseek", Model: "deepseek-chat", InputTokens: 300, OutputTokens: 600, LatencyMs: 3000, Success: true},
		{Provider: "groq", Model: "llama-3.1-8b-instant", InputTokens: 50, OutputTokens: 70, LatencyMs: 200},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := []ModelUsage{
		{Provider: "deepseek", Model: "deepseek-chat", Calls: 2, InputTokens: 400, OutputTokens: 1000, AvgLatencyMs: 2000},
		{Provider: "groq", Model: "llama-3.1-8b-instant", Calls: 1, InputTokens: 50, OutputTokens: 70, AvgLatencyMs: 200},
	}
	if len(usage) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(usage), len(want), usage)
	}
	for i := range want {
		if usage[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, usage[i], want[i])
		}
	}
}

func TestLLMUsageByModelEmpty(t *testing.T) {
	s := openTestStore(t)
	usage, err := s.EventRepo().LLMUsageByModel(context.Background())
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 0 {
		t.Errorf("expected no rows, got %+v", usage)
	}
}
