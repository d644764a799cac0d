// Package layout draws the frame around every screen: a header with the
// screen title and the current question-set summary, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/ui/theme"
)

// Smallest terminal that fits the settings form plus one question card.
const (
	MinWidth  = 80
	MinHeight = 24
)

const brand = "Mathgen"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to resize, showing the current size.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nThe question generator needs at least %d x %d.\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader renders the header bar: brand on the left, title centred
// and status on the right. A status that does not fit is cut with "…".
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)

	left := "  " + brand
	gapL := max((inner-lipgloss.Width(title))/2-lipgloss.Width(left), 1)
	used := lipgloss.Width(left) + gapL + lipgloss.Width(title) + 1
	status = truncate(status, max(inner-used, 0))

	gapR := max(inner-lipgloss.Width(left)-gapL-lipgloss.Width(title)-lipgloss.Width(status), 1)

	content := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(left) +
		strings.Repeat(" ", gapL) +
		lipgloss.NewStyle().Foreground(theme.Text).Render(title) +
		strings.Repeat(" ", gapR) +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	return bar(content, width)
}

// RenderFooter renders the key hints. When they do not fit, the hints just
// before the last one are dropped, so the first hint and quit always show.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-4, 0)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
	}

	join := func(ps []string) string { return "  " + strings.Join(ps, "   ") }
	for len(parts) > 2 && lipgloss.Width(join(parts)) > inner {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return bar(join(parts), width)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return header + "\n" + body + "\n" + footer
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
