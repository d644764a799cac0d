package config

import (
	"fmt"
	"strconv"
)

// Choice is one selectable value of a field, with its raw form for Set and
// a label for display.
type Choice struct {
	Raw   string
	Label string
}

// FieldLabel returns the control label shown next to a field.
func FieldLabel(f Field) string {
	switch f {
	case FieldYearLevel:
		return "Year Level"
	case FieldDifficulty:
		return "Difficulty Level"
	case FieldQuestionType:
		return "Question Type"
	case FieldTopic:
		return "Math Topic"
	case FieldNumQuestions:
		return "Number of Questions"
	default:
		return string(f)
	}
}

// Choices returns the selectable values of a field in display order.
func Choices(f Field) []Choice {
	var out []Choice
	switch f {
	case FieldYearLevel:
		for _, y := range AllYearLevels() {
			out = append(out, Choice{Raw: strconv.Itoa(y), Label: YearDisplayName(y)})
		}
	case FieldDifficulty:
		for _, d := range AllDifficulties() {
			out = append(out, Choice{Raw: string(d), Label: DifficultyDisplayName(d)})
		}
	case FieldQuestionType:
		for _, t := range AllQuestionTypes() {
			out = append(out, Choice{Raw: string(t), Label: QuestionTypeDisplayName(t)})
		}
	case FieldTopic:
		for _, t := range AllTopics() {
			out = append(out, Choice{Raw: string(t), Label: TopicDisplayName(t)})
		}
	case FieldNumQuestions:
		for _, n := range AllQuestionCounts() {
			out = append(out, Choice{Raw: strconv.Itoa(n), Label: fmt.Sprintf("%d Questions", n)})
		}
	}
	return out
}

// Label returns the display label of the field's current value.
func (c Config) Label(f Field) string {
	raw, err := c.Get(f)
	if err != nil {
		return ""
	}
	for _, ch := range Choices(f) {
		if ch.Raw == raw {
			return ch.Label
		}
	}
	return raw
}

// Cycle moves a field delta steps through its choices, wrapping at either
// end. The change goes through Set, so the result is always in domain.
func (c Config) Cycle(f Field, delta int) (Config, error) {
	choices := Choices(f)
	if len(choices) == 0 {
		return c, &UnknownFieldError{Field: f}
	}
	raw, _ := c.Get(f)
	idx := 0
	for i, ch := range choices {
		if ch.Raw == raw {
			idx = i
			break
		}
	}
	n := len(choices)
	idx = ((idx+delta)%n + n) % n
	return c.Set(f, choices[idx].Raw)
}
