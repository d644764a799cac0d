package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/questions"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

// QuestionCard renders one generated question with its lettered options.
// When revealed, the option matching the correct answer is highlighted and
// the answer and explanation are shown below.
type QuestionCard struct {
	Number   int
	Item     questions.Item
	Focused  bool
	MaxWidth int
}

// View renders the card.
func (c QuestionCard) View() string {
	q := c.Item.Question
	width := c.MaxWidth
	if width < 20 {
		width = 20
	}
	text := lipgloss.NewStyle().Width(width - 4)

	var b strings.Builder
	heading := fmt.Sprintf("%d. ", c.Number)
	headingStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if c.Focused {
		headingStyle = theme.Selected
	}
	b.WriteString(headingStyle.Render(heading) + text.Render(q.Text))

	for _, opt := range q.Options {
		line := "   " + opt
		switch {
		case c.Item.Revealed && optionMatches(opt, q.CorrectAnswer):
			b.WriteString("\n" + theme.Correct.Render(line+"  ✓"))
		case c.Item.Revealed:
			b.WriteString("\n" + theme.Dim.Render(line))
		default:
			b.WriteString("\n" + theme.Body.Render(line))
		}
	}

	b.WriteString("\n")
	if c.Item.Revealed {
		b.WriteString(theme.Correct.Render("   Answer: " + q.CorrectAnswer))
		if q.Explanation != "" {
			b.WriteString("\n" + theme.Hint.Render(text.Render("   "+q.Explanation)))
		}
		b.WriteString("\n" + theme.Dim.Render("   [hide answer]"))
	} else {
		b.WriteString(theme.Dim.Render("   [show answer]"))
	}

	style := theme.QuestionCard.Width(width)
	if c.Focused {
		style = style.BorderForeground(theme.Primary)
	}
	return style.Render(b.String())
}

// optionMatches reports whether an option such as "B) 14" corresponds to
// answer, given either as the letter or as the option text.
func optionMatches(option, answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}
	label, rest, ok := strings.Cut(option, ")")
	if !ok {
		return strings.EqualFold(strings.TrimSpace(option), answer)
	}
	if strings.EqualFold(strings.TrimSpace(label), answer) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(rest), answer)
}
