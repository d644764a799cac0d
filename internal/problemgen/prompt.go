package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathgen/internal/config"
)

const systemPrompt = `You are an expert elementary math teacher creating educational questions for students.

Rules:
- Use age-appropriate language and concepts for the given year level.
- Make questions clear, unambiguous and engaging for children.
- Vary question contexts, using real-world scenarios.
- Ensure every answer is correct.
- Use plain text for all math. No LaTeX. Use / for fractions.
- Always follow the exact format requested.`

// yearContexts describes the curriculum of each year level.
var yearContexts = map[int]string{
	1: "Year 1 (ages 5-6): Basic counting 1-20, simple addition/subtraction up to 10, basic shapes",
	2: "Year 2 (ages 6-7): Addition/subtraction up to 100, basic multiplication by 2,5,10, simple fractions",
	3: "Year 3 (ages 7-8): Multiplication tables 2-10, division, simple fractions, basic measurement",
	4: "Year 4 (ages 8-9): Larger numbers up to 10,000, decimals, basic geometry, area and perimeter",
	5: "Year 5 (ages 9-10): Advanced fractions, percentages, negative numbers, coordinate geometry",
	6: "Year 6 (ages 10-11): Algebra basics, ratios, complex geometry, basic statistics, problem solving",
}

var difficultyLevels = map[config.Difficulty]string{
	config.DifficultyEasy:   "basic",
	config.DifficultyMedium: "intermediate",
	config.DifficultyHard:   "challenging",
}

var topicGuidelines = map[config.Topic]string{
	config.TopicArithmetic: "Focus on numbers, calculations, operations",
	config.TopicAlgebra:    "Focus on patterns, equations, variables (age-appropriate)",
	config.TopicGeometry:   "Focus on shapes, angles, measurements, spatial reasoning",
}

// buildUserMessage constructs the user message for a batch. When
// structured is false the model is asked for the plain-text block format
// understood by ParseTextBlocks.
func buildUserMessage(cfg config.Config, structured bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly %d %s %s math questions appropriate for %s.\n\n",
		cfg.NumQuestions, difficultyLevels[cfg.Difficulty], cfg.Topic, yearContexts[cfg.YearLevel])
	fmt.Fprintf(&b, "Topic focus: %s\n", topicGuidelines[cfg.Topic])
	fmt.Fprintf(&b, "Question type: %s\n\n", cfg.QuestionType)

	if structured {
		b.WriteString(structuredInstruction(cfg.QuestionType))
	} else {
		b.WriteString("Format EXACTLY as follows for each question:\n\n")
		b.WriteString(textFormat(cfg.QuestionType))
	}

	fmt.Fprintf(&b, "\nGenerate exactly %d questions following this format precisely.", cfg.NumQuestions)
	return b.String()
}

func structuredInstruction(qt config.QuestionType) string {
	switch qt {
	case config.TypeMultipleChoice:
		return "Give each question exactly 4 options labelled \"A) \" to \"D) \" with exactly one correct. " +
			"Distractors should reflect common mistakes. The correct answer is the option letter only.\n"
	case config.TypeComparison:
		return "Each question compares two quantities. Write the question as \"Compare Quantity A and Quantity B.\" " +
			"followed by a \"Quantity A: ...\" line and a \"Quantity B: ...\" line. Use these options exactly: " +
			strings.Join(comparisonOptions, ", ") + ". The correct answer is the option letter only.\n"
	case config.TypeNumerical:
		return "Each question needs a numerical answer. The correct answer is the number only. " +
			"Leave options empty and show step-by-step working in the explanation.\n"
	default:
		return "Write real-world word problems (school, home, playground, shopping). " +
			"Include units in the answer where needed. Leave options empty and show clear solution steps.\n"
	}
}

func textFormat(qt config.QuestionType) string {
	switch qt {
	case config.TypeMultipleChoice:
		return `Q: [clear question text]
A) [option 1]
B) [option 2]
C) [option 3]
D) [option 4]
Answer: [A/B/C/D]
Explanation: [brief explanation]

---
`
	case config.TypeComparison:
		return `Q: Compare Quantity A and Quantity B. Which is greater?
Quantity A: [value/expression]
Quantity B: [value/expression]
A) Quantity A is greater
B) Quantity B is greater
C) They are equal
D) Cannot be determined
Answer: [A/B/C/D]
Explanation: [brief explanation]

---
`
	case config.TypeNumerical:
		return `Q: [question text requiring numerical answer]
Answer: [numerical answer only]
Explanation: [step-by-step solution]

---
`
	default:
		return `Q: [real-world word problem]
Answer: [answer with units if needed]
Explanation: [step-by-step solution]

---
`
	}
}
