package problemgen

// AnswerType describes the numeric representation of a numerical answer.
type AnswerType string

const (
	AnswerTypeInteger  AnswerType = "integer"  // e.g. "623", "-15"
	AnswerTypeDecimal  AnswerType = "decimal"  // e.g. "3.75", "0.5"
	AnswerTypeFraction AnswerType = "fraction" // e.g. "3/4", "7/2"
)

// optionLetters labels the four choices of a lettered question.
var optionLetters = []string{"A", "B", "C", "D"}

// comparisonOptions are the fixed choices of a quantitative comparison
// question.
var comparisonOptions = []string{
	"A) Quantity A is greater",
	"B) Quantity B is greater",
	"C) They are equal",
	"D) Cannot be determined",
}
