package questions

import "slices"

// Question is a single generated practice question. Questions are treated
// as immutable once received.
type Question struct {
	// Text is the question prompt. Never empty.
	Text string `json:"question"`

	// Options holds the answer choices for multiple-choice style items,
	// e.g. ["A) 12", "B) 14", "C) 16", "D) 18"]. Nil for free-answer items.
	Options []string `json:"options,omitempty"`

	// CorrectAnswer is the answer shown on reveal, e.g. "B" or "42".
	CorrectAnswer string `json:"correct_answer"`

	// Explanation is an optional worked solution.
	Explanation string `json:"explanation,omitempty"`
}

// HasOptions reports whether the question carries answer choices.
func (q Question) HasOptions() bool {
	return len(q.Options) > 0
}

// clone returns a copy that shares no slices with q.
func (q Question) clone() Question {
	q.Options = slices.Clone(q.Options)
	return q
}

// Item pairs a question with its answer-disclosure state.
type Item struct {
	Question Question
	Revealed bool
}
