package questions

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/mathgen/internal/schema"
)

func TestDecode_Valid(t *testing.T) {
	body := []byte(`{
		"questions": [
			{"question": "What is 6 x 7?", "options": ["A) 42", "B) 36", "C) 48", "D) 49"], "correct_answer": "A", "explanation": "6 x 7 = 42", "question_type": "multiple_choice"},
			{"question": "What is 9 + 8?", "options": null, "correct_answer": "17", "explanation": null}
		],
		"count": 2
	}`)

	qs, err := Decode(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Text != "What is 6 x 7?" || qs[0].CorrectAnswer != "A" {
		t.Errorf("unexpected first question: %+v", qs[0])
	}
	if !qs[0].HasOptions() || len(qs[0].Options) != 4 {
		t.Errorf("expected 4 options, got %v", qs[0].Options)
	}
	if qs[1].HasOptions() {
		t.Errorf("null options should decode to none, got %v", qs[1].Options)
	}
	if qs[1].Explanation != "" {
		t.Errorf("null explanation should decode to empty, got %q", qs[1].Explanation)
	}
}

func TestDecode_EmptyBatch(t *testing.T) {
	qs, err := Decode([]byte(`{"questions": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("expected no questions, got %d", len(qs))
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>502 Bad Gateway</html>`},
		{"missing questions", `{"detail": "nope"}`},
		{"questions not array", `{"questions": "many"}`},
		{"empty text", `{"questions": [{"question": "", "correct_answer": "1"}]}`},
		{"missing answer", `{"questions": [{"question": "1 + 1?"}]}`},
		{"numeric answer", `{"questions": [{"question": "1 + 1?", "correct_answer": 2}]}`},
		{"non-string option", `{"questions": [{"question": "1 + 1?", "correct_answer": "2", "options": [1, 2]}]}`},
		{"null body", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := Decode([]byte(tt.body))
			if err == nil {
				t.Fatalf("expected error, got %d questions", len(qs))
			}
			var verr *schema.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected *schema.ValidationError, got %T", err)
			}
		})
	}
}

func TestNewPayload_RoundTripsThroughDecode(t *testing.T) {
	body, err := json.Marshal(NewPayload(threeQuestions()))
	if err != nil {
		t.Fatal(err)
	}
	qs, err := Decode(body)
	if err != nil {
		t.Fatalf("payload written by NewPayload should decode: %v", err)
	}
	if len(qs) != 3 {
		t.Errorf("expected 3 questions, got %d", len(qs))
	}
}

func TestNewPayload_NilIsEmptyArray(t *testing.T) {
	body, _ := json.Marshal(NewPayload(nil))
	if string(body) != `{"questions":[],"count":0}` {
		t.Errorf("unexpected body: %s", body)
	}
}
