package problemgen

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// SampleGenerator produces deterministic questions without an LLM. It
// backs the mock provider of `mathgen serve` so the full client/server
// loop can run offline. The same config always yields the same batch.
type SampleGenerator struct{}

// NewSampleGenerator returns a SampleGenerator.
func NewSampleGenerator() *SampleGenerator {
	return &SampleGenerator{}
}

// sampleItem is one generated exercise before it is shaped for a
// question type: prompt is the bare task, expr the comparable expression.
type sampleItem struct {
	prompt string
	word   string
	expr   string
	answer int
	unit   string
	steps  string
}

func (g *SampleGenerator) Generate(ctx context.Context, cfg config.Config) ([]questions.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	out := make([]questions.Question, 0, cfg.NumQuestions)
	for i := range cfg.NumQuestions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := sampleFor(cfg, i)
		out = append(out, shape(item, cfg.QuestionType, i))
	}
	return out, nil
}

// scale grows operands with year level and difficulty.
func scale(cfg config.Config) int {
	s := cfg.YearLevel * 2
	switch cfg.Difficulty {
	case config.DifficultyMedium:
		s *= 2
	case config.DifficultyHard:
		s *= 5
	}
	return s
}

func sampleFor(cfg config.Config, i int) sampleItem {
	s := scale(cfg)
	a := s + 3*i + 1
	b := s/2 + i + 2

	switch cfg.Topic {
	case config.TopicAlgebra:
		c := a + b
		return sampleItem{
			prompt: fmt.Sprintf("Find x if x + %d = %d.", b, c),
			word:   fmt.Sprintf("A number plus %d makes %d. What is the number?", b, c),
			expr:   fmt.Sprintf("x in x + %d = %d", b, c),
			answer: a,
			steps:  fmt.Sprintf("Subtract %d from both sides: x = %d - %d = %d.", b, c, b, a),
		}
	case config.TopicGeometry:
		p := 2 * (a + b)
		return sampleItem{
			prompt: fmt.Sprintf("What is the perimeter of a rectangle %d cm long and %d cm wide?", a, b),
			word:   fmt.Sprintf("A garden is %d m long and %d m wide. How much fence goes all the way around it?", a, b),
			expr:   fmt.Sprintf("the perimeter of a %d by %d rectangle", a, b),
			answer: p,
			unit:   "m",
			steps:  fmt.Sprintf("Perimeter = 2 × (%d + %d) = 2 × %d = %d.", a, b, a+b, p),
		}
	default:
		sum := a + b
		return sampleItem{
			prompt: fmt.Sprintf("What is %d + %d?", a, b),
			word:   fmt.Sprintf("A class has %d books and buys %d more. How many books does the class have now?", a, b),
			expr:   fmt.Sprintf("%d + %d", a, b),
			answer: sum,
			unit:   "books",
			steps:  fmt.Sprintf("Add the numbers: %d + %d = %d.", a, b, sum),
		}
	}
}

// shape turns an exercise into a question of the requested type. Lettered
// types rotate the correct option so answers are not all "A".
func shape(item sampleItem, qt config.QuestionType, i int) questions.Question {
	answer := strconv.Itoa(item.answer)

	switch qt {
	case config.TypeMultipleChoice:
		correct := i % len(optionLetters)
		values := []int{item.answer + 1, item.answer - 1, item.answer + 10}
		opts := make([]string, 0, len(optionLetters))
		for k := range optionLetters {
			v := item.answer
			if k != correct {
				v, values = values[0], values[1:]
			}
			opts = append(opts, fmt.Sprintf("%s) %d", optionLetters[k], v))
		}
		return questions.Question{
			Text:          item.prompt,
			Options:       opts,
			CorrectAnswer: optionLetters[correct],
			Explanation:   item.steps,
		}

	case config.TypeComparison:
		// Alternate between greater, smaller and equal quantities.
		other := item.answer + []int{-1, 1, 0}[i%3]
		letter := "A"
		switch {
		case other > item.answer:
			letter = "B"
		case other == item.answer:
			letter = "C"
		}
		return questions.Question{
			Text:          comparisonText(item.expr, strconv.Itoa(other)),
			Options:       append([]string(nil), comparisonOptions...),
			CorrectAnswer: letter,
			Explanation:   fmt.Sprintf("%s Compare it with %d.", item.steps, other),
		}

	case config.TypeNumerical:
		return questions.Question{
			Text:          item.prompt,
			CorrectAnswer: answer,
			Explanation:   item.steps,
		}

	default:
		if item.unit != "" {
			answer += " " + item.unit
		}
		return questions.Question{
			Text:          item.word,
			CorrectAnswer: answer,
			Explanation:   item.steps,
		}
	}
}
