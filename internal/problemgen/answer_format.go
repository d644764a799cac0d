package problemgen

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// optionLabelRe matches the "A) " label of a lettered option.
var optionLabelRe = regexp.MustCompile(`^([A-D])\)\s*`)

// answerLetterRe matches an answer given as a bare or decorated option
// letter: "B", "B)", "(B)", "B. 14".
var answerLetterRe = regexp.MustCompile(`^\(?([A-D])(?:[).:]|\s|$)`)

// AnswerFormatValidator checks that the answer and options fit the
// requested question type: lettered types carry four labelled options and
// a letter answer, numerical answers start with a number, and free-answer
// types carry no options.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *questions.Question, cfg config.Config) *ValidationError {
	switch cfg.QuestionType {
	case config.TypeMultipleChoice, config.TypeComparison:
		return v.validateLettered(q)
	case config.TypeNumerical:
		if q.HasOptions() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "numerical questions must not have options",
			}
		}
		if _, ok := leadingNumber(q.CorrectAnswer); !ok {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("numerical answer %q does not start with a number", q.CorrectAnswer),
			}
		}
	default:
		if q.HasOptions() {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("%s questions must not have options", cfg.QuestionType),
			}
		}
	}
	return nil
}

func (v *AnswerFormatValidator) validateLettered(q *questions.Question) *ValidationError {
	if len(q.Options) != len(optionLetters) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("must have exactly 4 options, got %d", len(q.Options)),
		}
	}
	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		m := optionLabelRe.FindStringSubmatch(opt)
		if m == nil || m[1] != optionLetters[i] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %d is not labelled %s)", i+1, optionLetters[i]),
			}
		}
		body := strings.ToLower(strings.TrimSpace(opt[len(m[0]):]))
		if body == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("option %s is empty", optionLetters[i]),
			}
		}
		if seen[body] {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("duplicate option %q", opt),
			}
		}
		seen[body] = true
	}
	if !slices.Contains(optionLetters, q.CorrectAnswer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q is not an option letter", q.CorrectAnswer),
		}
	}
	return nil
}

// normalize tidies a raw question for the requested type before
// validation: fields are trimmed, lettered options are labelled, the
// answer of a lettered question is reduced to its letter, comparison
// questions get the fixed choices and free-answer types lose any options.
func normalize(q questions.Question, qt config.QuestionType) questions.Question {
	q.Text = strings.TrimSpace(q.Text)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	q.Explanation = strings.TrimSpace(q.Explanation)

	switch qt {
	case config.TypeMultipleChoice:
		q.Options = labelOptions(q.Options)
		q.CorrectAnswer = resolveLetter(q.CorrectAnswer, q.Options)
	case config.TypeComparison:
		q.Options = slices.Clone(comparisonOptions)
		q.CorrectAnswer = resolveLetter(q.CorrectAnswer, q.Options)
	default:
		q.Options = nil
	}
	return q
}

// labelOptions prefixes unlabelled options with their letter. Lists that
// are not exactly four long are returned unchanged for the validator to
// reject.
func labelOptions(opts []string) []string {
	if len(opts) != len(optionLetters) {
		return opts
	}
	out := make([]string, len(opts))
	for i, opt := range opts {
		opt = strings.TrimSpace(opt)
		if !optionLabelRe.MatchString(opt) {
			opt = optionLetters[i] + ") " + opt
		}
		out[i] = opt
	}
	return out
}

// resolveLetter maps an answer to its option letter, either by matching
// an option's text or from a leading letter. Unresolvable answers are
// returned as given.
func resolveLetter(answer string, opts []string) string {
	for i, opt := range opts {
		body := optionLabelRe.ReplaceAllString(opt, "")
		if i < len(optionLetters) && strings.EqualFold(strings.TrimSpace(body), answer) {
			return optionLetters[i]
		}
	}
	if len(answer) == 1 {
		answer = strings.ToUpper(answer)
	}
	if m := answerLetterRe.FindStringSubmatch(answer); m != nil {
		return m[1]
	}
	return answer
}
