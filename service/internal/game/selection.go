package game

import "github.com/hcarminati/Stool-Pidgeon/engine"

// Selection is the client-side two-click picker for swaps. The engine only
// ever sees the completed Swap action.
type Selection struct {
	first *engine.SlotRef
}

// Click records a slot. The second distinct click returns the swap and clears
// the selection; clicking the pending slot again deselects it.
func (s *Selection) Click(ref engine.SlotRef) (engine.Action, bool) {
	switch {
	case s.first == nil:
		r := ref
		s.first = &r
		return engine.Action{}, false
	case *s.first == ref:
		s.first = nil
		return engine.Action{}, false
	}
	a := engine.Swap(*s.first, ref)
	s.first = nil
	return a, true
}

// Pending returns the first pick, if any.
func (s *Selection) Pending() (engine.SlotRef, bool) {
	if s.first == nil {
		return engine.SlotRef{}, false
	}
	return *s.first, true
}

// Reset clears the selection. It is safe to call at any time.
func (s *Selection) Reset() { s.first = nil }
