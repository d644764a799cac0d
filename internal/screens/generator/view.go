package generator

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/generation"
	"github.com/abhisek/mathgen/internal/ui/components"
	"github.com/abhisek/mathgen/internal/ui/theme"
)

const maxCardWidth = 90

func (s *GeneratorScreen) View(width, height int) string {
	loading := s.ctrl.Status() == generation.StatusLoading
	btn := s.button
	btn.Busy = loading
	btn.Prefix = s.spinner.View()

	var top strings.Builder
	top.WriteString("\n")
	top.WriteString(indent(s.renderSettings(), 2))
	top.WriteString("\n\n")
	top.WriteString("  " + btn.View())
	if s.toast.Visible() {
		top.WriteString("   " + s.toast.View())
	}
	top.WriteString("\n")
	top.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	top.WriteString("\n")

	header := top.String()
	remaining := height - lipgloss.Height(header)
	return header + s.renderBody(width, remaining, loading)
}

func (s *GeneratorScreen) renderSettings() string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Settings")
	fields := s.fields
	if s.focus != focusSettings {
		fields.Selected = -1
	}
	return title + "\n" + fields.View()
}

func (s *GeneratorScreen) renderBody(width, height int, loading bool) string {
	if s.ctrl.Len() == 0 {
		if loading {
			return lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render("\n" + s.spinner.View() + " Generating questions...")
		}
		return renderPlaceholder(width)
	}
	return s.renderQuestions(width, height)
}

func renderPlaceholder(width int) string {
	title := theme.Title.Width(width).Render("\nReady to Generate Questions!")
	sub := theme.Subtitle.Width(width).
		Render("Choose your settings above and press Enter to create practice questions.")
	return title + "\n\n" + sub
}

// renderQuestions renders a window of question cards that keeps the card
// under the cursor visible.
func (s *GeneratorScreen) renderQuestions(width, height int) string {
	items := s.ctrl.Questions()
	cardWidth := min(width-4, maxCardWidth)

	progress := components.NewRevealProgress(s.ctrl.RevealedCount(), len(items), min(cardWidth, 50)).View()
	height -= lipgloss.Height(progress) + 1

	cards := make([]string, len(items))
	for i, it := range items {
		cards[i] = components.QuestionCard{
			Number:   i + 1,
			Item:     it,
			Focused:  s.focus == focusQuestions && i == s.cursor,
			MaxWidth: cardWidth,
		}.View()
	}

	cursor := min(s.cursor, len(cards)-1)
	start := cursor
	used := lipgloss.Height(cards[cursor])
	for start > 0 {
		h := lipgloss.Height(cards[start-1])
		if used+h > height {
			break
		}
		used += h
		start--
	}

	var visible []string
	used = 0
	for i := start; i < len(cards); i++ {
		h := lipgloss.Height(cards[i])
		if i > cursor && used+h > height {
			break
		}
		visible = append(visible, cards[i])
		used += h
	}

	body := lipgloss.JoinVertical(lipgloss.Left, visible...)
	return indent(progress, 2) + "\n" + indent(clipLines(body, height), 2)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}
