package config

import "fmt"

// Difficulty is the requested difficulty of a question batch.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns all difficulties in display order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// DifficultyDisplayName returns a human-readable name for a difficulty.
func DifficultyDisplayName(d Difficulty) string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	default:
		return string(d)
	}
}

// QuestionType selects the answer style of generated questions.
type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeNumerical      QuestionType = "numerical"
	TypeComparison     QuestionType = "comparison"
	TypeProblemSolving QuestionType = "problem_solving"
)

// AllQuestionTypes returns all question types in display order.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{TypeMultipleChoice, TypeNumerical, TypeComparison, TypeProblemSolving}
}

// QuestionTypeDisplayName returns a human-readable name for a question type.
func QuestionTypeDisplayName(t QuestionType) string {
	switch t {
	case TypeMultipleChoice:
		return "Multiple Choice"
	case TypeNumerical:
		return "Numerical Answer"
	case TypeComparison:
		return "Quantitative Comparison"
	case TypeProblemSolving:
		return "Problem Solving"
	default:
		return string(t)
	}
}

// Topic is the math strand a batch focuses on.
type Topic string

const (
	TopicArithmetic Topic = "arithmetic"
	TopicAlgebra    Topic = "algebra"
	TopicGeometry   Topic = "geometry"
)

// AllTopics returns all topics in display order.
func AllTopics() []Topic {
	return []Topic{TopicArithmetic, TopicAlgebra, TopicGeometry}
}

// TopicDisplayName returns a human-readable name for a topic.
func TopicDisplayName(t Topic) string {
	switch t {
	case TopicArithmetic:
		return "Arithmetic"
	case TopicAlgebra:
		return "Algebra"
	case TopicGeometry:
		return "Geometry"
	default:
		return string(t)
	}
}

// Year levels run from MinYearLevel to MaxYearLevel inclusive.
const (
	MinYearLevel = 1
	MaxYearLevel = 6
)

// AllYearLevels returns every supported year level.
func AllYearLevels() []int {
	years := make([]int, 0, MaxYearLevel-MinYearLevel+1)
	for y := MinYearLevel; y <= MaxYearLevel; y++ {
		years = append(years, y)
	}
	return years
}

// AllQuestionCounts returns the batch sizes a user can request.
func AllQuestionCounts() []int {
	return []int{5, 10, 20}
}

var yearDescriptions = map[int]string{
	1: "Basic counting and simple addition",
	2: "Addition, subtraction, and basic multiplication",
	3: "Multiplication tables and division",
	4: "Larger numbers and decimals",
	5: "Fractions, percentages, and coordinates",
	6: "Algebra basics and advanced topics",
}

// YearDescription returns the short curriculum summary for a year level,
// or "" for an unknown year.
func YearDescription(year int) string {
	return yearDescriptions[year]
}

// YearDisplayName returns the year label with its age band, e.g. "Year 3 (Ages 7-8)".
func YearDisplayName(year int) string {
	return fmt.Sprintf("Year %d (Ages %d-%d)", year, year+4, year+5)
}
