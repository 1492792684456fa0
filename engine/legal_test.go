package engine

import (
	"testing"
)

// containsAction reports whether a appears in actions.
func containsAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x == a {
			return true
		}
	}
	return false
}

// countKind counts the actions of one kind.
func countKind(actions []Action, k ActionKind) int {
	n := 0
	for _, a := range actions {
		if a.Kind == k {
			n++
		}
	}
	return n
}

// TestLegalActionsDraw verifies only the draw pile is offered at the start.
func TestLegalActionsDraw(t *testing.T) {
	g := newDealtGame(t)
	acts := g.LegalActions()
	if len(acts) != 1 || acts[0] != DrawPile() {
		t.Fatalf("fresh game: want [draw-pile], got %v", acts)
	}
}

// TestLegalActionsDecide verifies keeps, discard and knock after a draw.
func TestLegalActionsDecide(t *testing.T) {
	g := newDealtGame(t)
	for i := uint8(0); i < 4; i++ {
		setSlot(t, g, 0, i, Numbered(i+2))
	}
	drawForcedCard(t, g, Numbered(8))

	acts := g.LegalActions()
	if n := countKind(acts, ActKeep); n != 4 {
		t.Errorf("keep actions: want 4, got %d", n)
	}
	if !containsAction(acts, Discard()) {
		t.Error("Discard missing")
	}
	if !containsAction(acts, Knock()) {
		t.Error("Knock missing before anyone knocked")
	}
	if len(acts) != 6 {
		t.Errorf("want 6 actions, got %d: %v", len(acts), acts)
	}
}

// TestLegalActionsDecideSkipsEmptySlots verifies eliminated slots are never keep targets.
func TestLegalActionsDecideSkipsEmptySlots(t *testing.T) {
	g := newDealtGame(t)
	setSlot(t, g, 0, 0, Numbered(3))
	clearSlot(g, 0, 0)
	drawForcedCard(t, g, Numbered(8))

	if containsAction(g.LegalActions(), Keep(0, 0)) {
		t.Error("Keep into empty slot must not be legal")
	}
}

// TestRatLegalInEffects verifies RAT slots are valid targets for swaps and elimination.
func TestRatLegalInEffects(t *testing.T) {
	rat := NewCard(TypeRat, 0)

	g := newDealtGame(t)
	setSlot(t, g, 0, 1, rat)
	drawForcedCard(t, g, NewCard(TypeBamboozle, 0))
	mustApply(t, g, Discard())
	if !containsAction(g.LegalActions(), Swap(SlotRef{0, 1}, SlotRef{1, 0})) {
		t.Error("BAMBOOZLE_SELECT should offer swapping the RAT slot")
	}

	g = newDealtGame(t)
	setSlot(t, g, 0, 1, rat)
	drawForcedCard(t, g, NewCard(TypeVendetta, 0))
	mustApply(t, g, Discard())
	mustApply(t, g, SkipEffect())
	if !containsAction(g.LegalActions(), Swap(SlotRef{1, 3}, SlotRef{0, 1})) {
		t.Error("VENDETTA_SWAP should offer swapping the RAT slot")
	}

	g = newDealtGame(t)
	setSlot(t, g, 0, 1, rat)
	drawForcedCard(t, g, NewCard(TypeKingpin, 0))
	mustApply(t, g, Discard())
	mustApply(t, g, KingpinChooseEliminate())
	if !containsAction(g.LegalActions(), KingpinEliminate(0, 1)) {
		t.Error("KINGPIN_ELIMINATE should offer the RAT slot")
	}
}

// TestSwapPairsAllSlots verifies a full table yields every unordered pair once.
func TestSwapPairsAllSlots(t *testing.T) {
	g := newDealtGame(t)
	drawForcedCard(t, g, NewCard(TypeBamboozle, 0))
	mustApply(t, g, Discard())

	acts := g.LegalActions()
	// 8 slots: C(8,2) = 28 pairs plus skip.
	if n := countKind(acts, ActSwap); n != 28 {
		t.Errorf("swap pairs: want 28, got %d", n)
	}
	seen := make(map[Action]bool)
	for _, a := range acts {
		if a.Kind != ActSwap {
			continue
		}
		if a.Target == a.Second {
			t.Errorf("self pair offered: %s", a)
		}
		if seen[a] {
			t.Errorf("duplicate pair: %s", a)
		}
		seen[a] = true
	}
	if !containsAction(acts, SkipEffect()) {
		t.Error("SkipEffect missing")
	}
}

// TestBamboozleSingleTarget verifies that with one non-empty slot on the table
// no swap is offered, only the skip.
func TestBamboozleSingleTarget(t *testing.T) {
	g := newDealtGame(t)
	forceTop(t, g, NewCard(TypeBamboozle, 0))
	for p := uint8(0); p < 2; p++ {
		for i := uint8(0); i < 4; i++ {
			if p == 1 && i == 2 {
				continue
			}
			clearSlot(g, p, i)
		}
	}
	mustApply(t, g, DrawPile())
	mustApply(t, g, Discard())

	acts := g.LegalActions()
	if len(acts) != 1 || acts[0] != SkipEffect() {
		t.Fatalf("one slot left: want [skip], got %v", acts)
	}
}

// TestBamboozleTwoTargets verifies exactly one pair when two slots remain.
func TestBamboozleTwoTargets(t *testing.T) {
	g := newDealtGame(t)
	forceTop(t, g, NewCard(TypeBamboozle, 0))
	for p := uint8(0); p < 2; p++ {
		for i := uint8(0); i < 4; i++ {
			if i == 3 {
				continue
			}
			clearSlot(g, p, i)
		}
	}
	mustApply(t, g, DrawPile())
	mustApply(t, g, Discard())

	acts := g.LegalActions()
	want := []Action{Swap(SlotRef{0, 3}, SlotRef{1, 3}), SkipEffect()}
	if len(acts) != len(want) {
		t.Fatalf("want %v, got %v", want, acts)
	}
	for i := range want {
		if acts[i] != want[i] {
			t.Errorf("action %d: want %s, got %s", i, want[i], acts[i])
		}
	}
}

// TestPeekTargetsAnyHand verifies peeks reach every non-empty slot.
func TestPeekTargetsAnyHand(t *testing.T) {
	g := newDealtGame(t)
	drawForcedCard(t, g, NewCard(TypeStoolPigeon, 0))
	mustApply(t, g, Discard())
	clearSlot(g, 1, 0)

	acts := g.LegalActions()
	if n := countKind(acts, ActPeek); n != 7 {
		t.Errorf("peek targets: want 7, got %d", n)
	}
	if containsAction(acts, Peek(SlotRef{1, 0})) {
		t.Error("peek of empty slot offered")
	}
	if !containsAction(acts, Peek(SlotRef{1, 1})) {
		t.Error("peek of opponent slot missing")
	}
}

// TestKingpinChooseWithoutSupply verifies ADD disappears when no card can be drawn.
func TestKingpinChooseWithoutSupply(t *testing.T) {
	g := newDealtGame(t)
	drawForcedCard(t, g, NewCard(TypeKingpin, 0))
	for _, c := range g.DrawPile {
		g.Players[1].Hand = append(g.Players[1].Hand, c)
		for p := range g.Players {
			g.Players[p].Memory.grow(1)
		}
	}
	g.DrawPile = g.DrawPile[:0]
	mustApply(t, g, Discard())

	acts := g.LegalActions()
	if containsAction(acts, KingpinChooseAdd()) {
		t.Error("KingpinChooseAdd offered with nothing to draw")
	}
	if !containsAction(acts, KingpinChooseEliminate()) {
		t.Error("KingpinChooseEliminate missing")
	}
}

// TestLegalActionsAreAllApplicable verifies every listed action applies cleanly
// on a copy of the state, across a sample of phases.
func TestLegalActionsAreAllApplicable(t *testing.T) {
	cards := []Card{
		Numbered(5),
		NewCard(TypeStoolPigeon, 0),
		NewCard(TypeBamboozle, 0),
		NewCard(TypeVendetta, 0),
		NewCard(TypeKingpin, 0),
	}
	for _, c := range cards {
		g := newDealtGame(t)
		drawForcedCard(t, g, c)
		for _, a := range g.LegalActions() {
			cp := g.Clone()
			if err := cp.ApplyAction(a); err != nil {
				t.Errorf("after drawing %s: legal action %s rejected: %v", c, a, err)
			}
		}
	}
}
