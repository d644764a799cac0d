package questions

import (
	"fmt"
	"strings"
)

// Markdown renders items as a numbered worksheet. With reveal set, the
// answer and explanation follow each question; otherwise only items whose
// Revealed flag is set show them.
func Markdown(title string, items []Item, reveal bool) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	if len(items) == 0 {
		b.WriteString("_No questions generated._\n")
		return b.String()
	}

	for i, it := range items {
		q := it.Question
		fmt.Fprintf(&b, "## Question %d\n\n%s\n\n", i+1, q.Text)
		for _, opt := range q.Options {
			fmt.Fprintf(&b, "- %s\n", opt)
		}
		if q.HasOptions() {
			b.WriteString("\n")
		}
		if reveal || it.Revealed {
			fmt.Fprintf(&b, "**Answer:** %s\n\n", q.CorrectAnswer)
			if q.Explanation != "" {
				fmt.Fprintf(&b, "> %s\n\n", q.Explanation)
			}
		}
	}
	return b.String()
}
