package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathgen/internal/ui/theme"
)

// Button is a styled button component. A busy button ignores presses and
// renders its BusyLabel after the spinner frame in Prefix.
type Button struct {
	Label     string
	BusyLabel string
	Busy      bool
	Prefix    string
	OnPress   func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label, busyLabel string, onPress func() tea.Cmd) Button {
	return Button{
		Label:     label,
		BusyLabel: busyLabel,
		OnPress:   onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if b.Busy {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Busy {
		label := b.BusyLabel
		if label == "" {
			label = b.Label
		}
		return theme.ButtonInactive.Render(b.Prefix + " " + label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
