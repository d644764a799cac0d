package problemgen

import (
	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// StructuralValidator checks that required fields are present and within
// length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *questions.Question, _ config.Config) *ValidationError {
	if q.Text == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text is empty",
		}
	}
	if len(q.Text) > 1000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "question text exceeds 1000 characters",
		}
	}
	if q.CorrectAnswer == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "correct answer is empty",
		}
	}
	if len(q.CorrectAnswer) > 200 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "correct answer exceeds 200 characters",
		}
	}
	if len(q.Explanation) > 2000 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation exceeds 2000 characters",
		}
	}
	return nil
}
