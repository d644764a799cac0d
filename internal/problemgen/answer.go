package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumberRe matches the number an answer starts with: an optional
// sign, digits with thousands separators, an optional decimal part or
// fraction. Units after the number are ignored.
var leadingNumberRe = regexp.MustCompile(`^-?\d[\d,]*(?:\.\d+|\s*/\s*\d+)?`)

// leadingNumber extracts the number at the start of a numerical answer,
// e.g. "1,200 cm" → "1200", "3 / 4" → "3/4".
func leadingNumber(answer string) (string, bool) {
	m := leadingNumberRe.FindString(strings.TrimSpace(answer))
	if m == "" {
		return "", false
	}
	m = strings.ReplaceAll(m, ",", "")
	m = strings.ReplaceAll(m, " ", "")
	return m, true
}

// inferAnswerType classifies a bare number produced by leadingNumber.
func inferAnswerType(num string) AnswerType {
	switch {
	case strings.Contains(num, "/"):
		return AnswerTypeFraction
	case strings.Contains(num, "."):
		return AnswerTypeDecimal
	default:
		return AnswerTypeInteger
	}
}

// normalizeAnswer normalizes an answer string for comparison.
func normalizeAnswer(answer string, answerType AnswerType) (string, error) {
	answer = strings.TrimSpace(answer)

	switch answerType {
	case AnswerTypeInteger:
		n, err := strconv.ParseInt(answer, 10, 64)
		if err != nil {
			return "", fmt.Errorf("invalid integer: %w", err)
		}
		return strconv.FormatInt(n, 10), nil

	case AnswerTypeDecimal:
		f, err := strconv.ParseFloat(answer, 64)
		if err != nil {
			return "", fmt.Errorf("invalid decimal: %w", err)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case AnswerTypeFraction:
		if !strings.Contains(answer, "/") {
			answer += "/1"
		}
		num, den, err := parseFraction(answer)
		if err != nil {
			return "", err
		}
		if den == 0 {
			return "", fmt.Errorf("zero denominator")
		}
		// Normalize sign: negative sign on numerator only.
		if den < 0 {
			num = -num
			den = -den
		}
		g := gcd(abs(num), den)
		num /= g
		den /= g
		if den == 1 {
			return strconv.FormatInt(num, 10), nil
		}
		return fmt.Sprintf("%d/%d", num, den), nil

	default:
		return answer, nil
	}
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// abs returns the absolute value of n.
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
