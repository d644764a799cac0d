package problemgen

import (
	"strings"

	"github.com/abhisek/mathgen/internal/config"
	"github.com/abhisek/mathgen/internal/questions"
)

// blockSeparator splits questions in the plain-text response format.
const blockSeparator = "---"

// ParseTextBlocks parses the plain-text response format:
//
//	Q: [question text]
//	A) [option]            (multiple_choice only)
//	Quantity A: [value]    (comparison only)
//	Quantity B: [value]    (comparison only)
//	Answer: [answer]
//	Explanation: [explanation]
//	---
//
// Blocks without question text or answer are skipped.
func ParseTextBlocks(content string, qt config.QuestionType) []questions.Question {
	var out []questions.Question
	for _, block := range strings.Split(content, blockSeparator) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if q, ok := parseBlock(block, qt); ok {
			out = append(out, q)
		}
	}
	return out
}

func parseBlock(block string, qt config.QuestionType) (questions.Question, bool) {
	var q questions.Question
	var quantityA, quantityB string

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "Q:"):
			q.Text = strings.TrimSpace(strings.TrimPrefix(line, "Q:"))
		case qt == config.TypeMultipleChoice && optionLabelRe.MatchString(line):
			q.Options = append(q.Options, line)
		case qt == config.TypeComparison && strings.HasPrefix(line, "Quantity A:"):
			quantityA = strings.TrimSpace(strings.TrimPrefix(line, "Quantity A:"))
		case qt == config.TypeComparison && strings.HasPrefix(line, "Quantity B:"):
			quantityB = strings.TrimSpace(strings.TrimPrefix(line, "Quantity B:"))
		case strings.HasPrefix(line, "Answer:"):
			q.CorrectAnswer = strings.TrimSpace(strings.TrimPrefix(line, "Answer:"))
		case strings.HasPrefix(line, "Explanation:"):
			q.Explanation = strings.TrimSpace(strings.TrimPrefix(line, "Explanation:"))
		}
	}

	if qt == config.TypeComparison && quantityA != "" && quantityB != "" {
		q.Text = comparisonText(quantityA, quantityB)
	}
	if q.Text == "" || q.CorrectAnswer == "" {
		return questions.Question{}, false
	}
	return q, true
}

// comparisonText renders the prompt of a quantitative comparison question.
func comparisonText(a, b string) string {
	return "Compare Quantity A and Quantity B.\nQuantity A: " + a + "\nQuantity B: " + b
}
