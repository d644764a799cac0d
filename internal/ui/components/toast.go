package components

import (
	"time"

	"github.com/abhisek/mathgen/internal/ui/theme"
)

// ToastDuration is how long a toast stays on screen.
const ToastDuration = 4 * time.Second

// Toast is a transient one-line notice. Seq identifies the message so that
// a dismissal timer only clears the toast it was started for.
type Toast struct {
	Message string
	Seq     int
}

// Show replaces the message and returns the new sequence number.
func (t *Toast) Show(message string) int {
	t.Seq++
	t.Message = message
	return t.Seq
}

// Dismiss clears the message if seq is still current.
func (t *Toast) Dismiss(seq int) bool {
	if seq != t.Seq || t.Message == "" {
		return false
	}
	t.Message = ""
	return true
}

// Visible reports whether a message is showing.
func (t Toast) Visible() bool {
	return t.Message != ""
}

// View renders the toast, or "" when hidden.
func (t Toast) View() string {
	if t.Message == "" {
		return ""
	}
	return theme.Toast.Render("⚠ " + t.Message)
}
