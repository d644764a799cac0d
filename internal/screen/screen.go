package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathgen/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is an optional interface for screens that own resources or
// in-flight work. The router calls Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// StatusProvider is an optional interface for screens that show a status
// line on the right of the header.
type StatusProvider interface {
	HeaderStatus() string
}

// StackMsg marks a message that belongs to a screen which may not be on
// top of the stack, such as the result of background work. The router
// delivers these to every stacked screen instead of only the active one.
type StackMsg interface {
	StackMsg()
}

// Resumer is an optional interface for screens that need to restart work
// when they become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
