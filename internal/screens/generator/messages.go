package generator

import "github.com/abhisek/mathgen/internal/generation"

// generationDoneMsg carries the result of a Fetch back to the event loop.
// It must reach the generator even while history is on top, or the
// controller would stay in Loading.
type generationDoneMsg struct {
	Result generation.Result
}

func (generationDoneMsg) StackMsg() {}

// toastExpiredMsg is sent when the toast with the given sequence number
// should disappear.
type toastExpiredMsg struct {
	Seq int
}

func (toastExpiredMsg) StackMsg() {}
