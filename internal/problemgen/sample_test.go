package problemgen

import (
	"context"
	"reflect"
	"testing"

	"github.com/abhisek/mathgen/internal/config"
)

func TestSampleGenerator_EveryCombinationValidates(t *testing.T) {
	gen := NewSampleGenerator()
	validators := DefaultConfig().Validators

	for _, year := range config.AllYearLevels() {
		for _, d := range config.AllDifficulties() {
			for _, qt := range config.AllQuestionTypes() {
				for _, topic := range config.AllTopics() {
					cfg := config.Config{YearLevel: year, Difficulty: d, QuestionType: qt, Topic: topic, NumQuestions: 10}
					qs, err := gen.Generate(context.Background(), cfg)
					if err != nil {
						t.Fatalf("%+v: %v", cfg, err)
					}
					if len(qs) != 10 {
						t.Fatalf("%+v: expected 10 questions, got %d", cfg, len(qs))
					}
					for i := range qs {
						for _, v := range validators {
							if verr := v.Validate(&qs[i], cfg); verr != nil {
								t.Fatalf("%+v question %d (%q): %v", cfg, i, qs[i].Text, verr)
							}
						}
					}
				}
			}
		}
	}
}

func TestSampleGenerator_Deterministic(t *testing.T) {
	gen := NewSampleGenerator()
	cfg := config.Default()

	first, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same config should yield the same batch")
	}
}

func TestSampleGenerator_RotatesCorrectOption(t *testing.T) {
	gen := NewSampleGenerator()
	cfg := testConfig(config.TypeMultipleChoice, 5)

	qs, err := gen.Generate(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(qs))
	for i, q := range qs {
		got[i] = q.CorrectAnswer
	}
	want := []string{"A", "B", "C", "D", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("answers = %v, want %v", got, want)
	}
}

func TestSampleGenerator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSampleGenerator().Generate(ctx, config.Default()); err == nil {
		t.Fatal("expected context error")
	}
}
