package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathgen/internal/ui/theme"
)

// FieldRow is one labelled value in a FieldList.
type FieldRow struct {
	Label string
	Value string
	Hint  string
}

// FieldList is a vertical list of settings. Up/down move the focus; the
// owner changes values and refreshes Rows.
type FieldList struct {
	Rows     []FieldRow
	Selected int
}

// NewFieldList creates a list focused on the first row.
func NewFieldList(rows []FieldRow) FieldList {
	return FieldList{Rows: rows}
}

// Update handles keyboard navigation.
func (f FieldList) Update(msg tea.Msg) (FieldList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if f.Selected > 0 {
			f.Selected--
		}
	case "down", "j":
		if f.Selected < len(f.Rows)-1 {
			f.Selected++
		}
	}
	return f, nil
}

// View renders the rows with the focused value wrapped in arrows.
func (f FieldList) View() string {
	labelWidth := 0
	for _, r := range f.Rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}

	var b strings.Builder
	for i, r := range f.Rows {
		label := r.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label))
		if i == f.Selected {
			b.WriteString(theme.Focused.Render("▸ " + label + "  ◂ " + r.Value + " ▸"))
		} else {
			b.WriteString(theme.Unselected.Render("  " + label + "    " + r.Value))
		}
		if r.Hint != "" {
			b.WriteString("  " + theme.Hint.Render(r.Hint))
		}
		if i < len(f.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
