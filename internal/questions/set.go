package questions

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an item index does not exist.
var ErrIndexOutOfRange = errors.New("question index out of range")

// Set is the ordered collection of generated questions plus the reveal
// state of each. It is replaced wholesale, never merged.
//
// Set is not safe for concurrent use; it is owned by a single event loop.
type Set struct {
	items []Item
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// Replace discards the current items and installs qs, all hidden.
func (s *Set) Replace(qs []Question) {
	items := make([]Item, len(qs))
	for i, q := range qs {
		items[i] = Item{Question: q.clone()}
	}
	s.items = items
}

// ToggleReveal flips the revealed flag of the item at index only.
func (s *Set) ToggleReveal(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(s.items))
	}
	s.items[index].Revealed = !s.items[index].Revealed
	return nil
}

// Len returns the number of items.
func (s *Set) Len() int {
	return len(s.items)
}

// Empty reports whether the set has no items.
func (s *Set) Empty() bool {
	return len(s.items) == 0
}

// Item returns the item at index.
func (s *Set) Item(index int) (Item, bool) {
	if index < 0 || index >= len(s.items) {
		return Item{}, false
	}
	return s.items[index], true
}

// Items returns a copy of all items in order.
func (s *Set) Items() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = Item{Question: it.Question.clone(), Revealed: it.Revealed}
	}
	return out
}

// RevealedCount returns how many items currently show their answer.
func (s *Set) RevealedCount() int {
	n := 0
	for _, it := range s.items {
		if it.Revealed {
			n++
		}
	}
	return n
}
