package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Field names a single generation parameter. The values double as the
// JSON keys of the backend request body.
type Field string

const (
	FieldYearLevel    Field = "year_level"
	FieldDifficulty   Field = "difficulty"
	FieldQuestionType Field = "question_type"
	FieldTopic        Field = "topic"
	FieldNumQuestions Field = "num_questions"
)

// AllFields returns the recognized fields in display order.
func AllFields() []Field {
	return []Field{FieldYearLevel, FieldDifficulty, FieldQuestionType, FieldTopic, FieldNumQuestions}
}

// Config holds the parameters for one question batch. The zero value is not
// valid; start from Default and change fields through Set.
type Config struct {
	YearLevel    int          `json:"year_level"`
	Difficulty   Difficulty   `json:"difficulty"`
	QuestionType QuestionType `json:"question_type"`
	Topic        Topic        `json:"topic"`
	NumQuestions int          `json:"num_questions"`
}

// Default returns the configuration shown before the user changes anything.
func Default() Config {
	return Config{
		YearLevel:    3,
		Difficulty:   DifficultyMedium,
		QuestionType: TypeMultipleChoice,
		Topic:        TopicArithmetic,
		NumQuestions: 20,
	}
}

// CoercionError reports a raw value that could not be turned into a valid
// value for its field.
type CoercionError struct {
	Field Field
	Raw   string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Raw, e.Field, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// UnknownFieldError reports a field key outside the recognized set.
type UnknownFieldError struct {
	Field Field
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown config field %q", string(e.Field))
}

// Set returns a copy of c with field set to raw, coerced to the field's type.
// On error the returned Config is c unchanged; no other field is touched in
// either case.
func (c Config) Set(field Field, raw string) (Config, error) {
	next := c
	switch field {
	case FieldYearLevel:
		n, err := parseInt(field, raw)
		if err != nil {
			return c, err
		}
		if n < MinYearLevel || n > MaxYearLevel {
			return c, &CoercionError{Field: field, Raw: raw, Err: fmt.Errorf("must be between %d and %d", MinYearLevel, MaxYearLevel)}
		}
		next.YearLevel = n
	case FieldNumQuestions:
		n, err := parseInt(field, raw)
		if err != nil {
			return c, err
		}
		if !slices.Contains(AllQuestionCounts(), n) {
			return c, &CoercionError{Field: field, Raw: raw, Err: fmt.Errorf("must be one of %v", AllQuestionCounts())}
		}
		next.NumQuestions = n
	case FieldDifficulty:
		d := Difficulty(raw)
		if !slices.Contains(AllDifficulties(), d) {
			return c, &CoercionError{Field: field, Raw: raw, Err: fmt.Errorf("must be one of %v", AllDifficulties())}
		}
		next.Difficulty = d
	case FieldQuestionType:
		t := QuestionType(raw)
		if !slices.Contains(AllQuestionTypes(), t) {
			return c, &CoercionError{Field: field, Raw: raw, Err: fmt.Errorf("must be one of %v", AllQuestionTypes())}
		}
		next.QuestionType = t
	case FieldTopic:
		t := Topic(raw)
		if !slices.Contains(AllTopics(), t) {
			return c, &CoercionError{Field: field, Raw: raw, Err: fmt.Errorf("must be one of %v", AllTopics())}
		}
		next.Topic = t
	default:
		return c, &UnknownFieldError{Field: field}
	}
	return next, nil
}

// Get returns the raw string form of a field, suitable for feeding back
// into Set.
func (c Config) Get(field Field) (string, error) {
	switch field {
	case FieldYearLevel:
		return strconv.Itoa(c.YearLevel), nil
	case FieldDifficulty:
		return string(c.Difficulty), nil
	case FieldQuestionType:
		return string(c.QuestionType), nil
	case FieldTopic:
		return string(c.Topic), nil
	case FieldNumQuestions:
		return strconv.Itoa(c.NumQuestions), nil
	default:
		return "", &UnknownFieldError{Field: field}
	}
}

// Validate checks that every field holds a value from its domain. It is
// used on configs that did not come through Set, such as decoded requests.
func (c Config) Validate() error {
	check := Default()
	for _, f := range AllFields() {
		raw, _ := c.Get(f)
		var err error
		if check, err = check.Set(f, raw); err != nil {
			return err
		}
	}
	return nil
}

// Summary renders the config as a one-line caption,
// e.g. "Year 3 • medium difficulty • arithmetic".
func (c Config) Summary() string {
	return fmt.Sprintf("Year %d • %s difficulty • %s", c.YearLevel, c.Difficulty, c.Topic)
}

func parseInt(field Field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &CoercionError{Field: field, Raw: raw, Err: err}
	}
	return n, nil
}
