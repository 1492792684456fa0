package engine

import "testing"

// TestKeepFromPileHiddenFromOpponent verifies only the actor learns a kept pile card.
func TestKeepFromPileHiddenFromOpponent(t *testing.T) {
	g := newDealtGame(t)
	setSlot(t, g, 0, 0, Numbered(3))
	ref := SlotRef{0, 0}
	g.observe(1, ref) // opponent had peeked the old card
	drawForcedCard(t, g, Numbered(7))
	mustApply(t, g, Keep(0, 0))

	if c, ok := g.Players[0].Memory.Known(ref); !ok || c != Numbered(7) {
		t.Errorf("actor memory: want 7, got %s", c)
	}
	if _, ok := g.Players[1].Memory.Known(ref); ok {
		t.Error("opponent must forget a slot replaced with an unseen card")
	}
}

// TestKeepFromDiscardHiddenFromOpponent verifies a card taken from the discard
// pile and kept face down is remembered by the actor only.
func TestKeepFromDiscardHiddenFromOpponent(t *testing.T) {
	g := newDealtGame(t)
	drawForcedCard(t, g, Numbered(3))
	mustApply(t, g, Discard())

	setSlot(t, g, 1, 0, Numbered(8))
	ref := SlotRef{1, 0}
	g.observe(0, ref) // opponent had peeked the old card
	mustApply(t, g, DrawDiscard())
	mustApply(t, g, Keep(1, 0))

	if c, ok := g.Players[1].Memory.Known(ref); !ok || c != Numbered(3) {
		t.Errorf("actor memory of %s: want 3, got %s", ref, c)
	}
	if c, ok := g.Players[0].Memory.Known(ref); ok {
		t.Errorf("opponent memory of %s: want unknown, got %s", ref, c)
	}
	if _, ok := g.Visible(0, ref); ok {
		t.Errorf("opponent must not see %s face up", ref)
	}
}

// TestMemoryNeverAffectsLegality verifies wiping memory changes no legal action.
func TestMemoryNeverAffectsLegality(t *testing.T) {
	g := newDealtGame(t)
	drawForcedCard(t, g, NewCard(TypeBamboozle, 0))
	mustApply(t, g, Discard())

	before := g.LegalActions()
	scores := g.Scores()
	for p := range g.Players {
		for q := range g.Players[p].Memory.Slots {
			for i := range g.Players[p].Memory.Slots[q] {
				g.Players[p].Memory.Slots[q][i] = UnknownCard
			}
		}
	}
	after := g.LegalActions()
	if len(before) != len(after) {
		t.Fatalf("legal actions changed with memory: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("legal action %d changed: %s vs %s", i, before[i], after[i])
		}
	}
	for p, s := range g.Scores() {
		if s != scores[p] {
			t.Errorf("score of player %d changed with memory", p)
		}
	}
}

// TestVisible verifies the view-facing visibility query.
func TestVisible(t *testing.T) {
	g := newDealtGame(t)
	if c, ok := g.Visible(0, SlotRef{0, 2}); !ok || c != g.Players[0].Hand[2] {
		t.Errorf("own face-up slot: want visible %s, got %s (%v)", g.Players[0].Hand[2], c, ok)
	}
	if _, ok := g.Visible(0, SlotRef{0, 0}); ok {
		t.Error("own face-down slot must not be visible")
	}
	if _, ok := g.Visible(0, SlotRef{1, 2}); ok {
		t.Error("opponent face-up slot must not be visible to the other player")
	}
	clearSlot(g, 1, 1)
	if c, ok := g.Visible(0, SlotRef{1, 1}); !ok || c != EmptyCard {
		t.Errorf("empty slot: want visible empty, got %s (%v)", c, ok)
	}
	if _, ok := g.Visible(0, SlotRef{1, 9}); ok {
		t.Error("out-of-range slot must not be visible")
	}
}

// TestMemoryKnownOutOfRange verifies lookups past the hand are unknown rather than panics.
func TestMemoryKnownOutOfRange(t *testing.T) {
	g := newDealtGame(t)
	if _, ok := g.Players[0].Memory.Known(SlotRef{3, 0}); ok {
		t.Error("unknown player should not be known")
	}
	if n := len(g.Players[0].Memory.KnownOf(9)); n != 0 {
		t.Errorf("KnownOf(9): want empty, got %d", n)
	}
}
