package engine

// LegalActions returns every action the acting player may take, in a stable
// order. It never mutates the state. A terminal state has no legal actions.
func (g *GameState) LegalActions() []Action {
	me := g.CurrentPlayer
	switch g.Phase {
	case PhaseDraw:
		var out []Action
		if g.canSupplyCard() {
			out = append(out, DrawPile())
		}
		if g.Rules.AllowDrawFromDiscard && len(g.DiscardPile) > 0 {
			out = append(out, DrawDiscard())
		}
		return out

	case PhaseDecide, PhaseFinalTurn:
		var out []Action
		for _, ref := range g.ownSlots(me, false) {
			out = append(out, Keep(me, ref.Slot))
		}
		out = append(out, Discard())
		if g.Phase == PhaseDecide && !g.IsKnocked() {
			out = append(out, Knock())
		}
		return out

	case PhaseStoolPigeonPeek, PhaseVendettaPeek:
		var out []Action
		for _, ref := range g.allSlots() {
			out = append(out, Peek(ref))
		}
		return append(out, SkipEffect())

	case PhaseStoolPigeonSwap:
		var out []Action
		for _, ref := range g.ownSlots(me, false) {
			out = append(out, PigeonSwap(me, ref.Slot))
		}
		return append(out, SkipEffect())

	case PhaseBamboozleSelect, PhaseVendettaSwap:
		return append(g.swapPairs(), SkipEffect())

	case PhaseKingpinChoose:
		var out []Action
		if len(g.ownSlots(me, true)) > 0 {
			out = append(out, KingpinChooseEliminate())
		}
		if g.canSupplyCard() {
			out = append(out, KingpinChooseAdd())
		}
		return append(out, SkipEffect())

	case PhaseKingpinEliminate:
		var out []Action
		for _, ref := range g.ownSlots(me, true) {
			out = append(out, KingpinEliminate(me, ref.Slot))
		}
		return append(out, SkipEffect())

	case PhaseKingpinAdd:
		var out []Action
		if g.canSupplyCard() {
			for _, opp := range g.Opponents(me) {
				out = append(out, KingpinAdd(opp))
			}
		}
		return append(out, SkipEffect())
	}
	return nil
}

// IsLegal reports whether a is among LegalActions.
func (g *GameState) IsLegal(a Action) bool {
	a = a.normalize()
	for _, l := range g.LegalActions() {
		if l == a {
			return true
		}
	}
	return false
}

// ownSlots returns the player's non-empty slots. RAT slots are excluded
// unless includeRat is set: a RAT never leaves a hand through a keep.
func (g *GameState) ownSlots(player uint8, includeRat bool) []SlotRef {
	var out []SlotRef
	for i, c := range g.Players[player].Hand {
		if c == EmptyCard || (!includeRat && c.Type() == TypeRat) {
			continue
		}
		out = append(out, SlotRef{player, uint8(i)})
	}
	return out
}

// allSlots returns every non-empty slot of every hand, in player then slot order.
func (g *GameState) allSlots() []SlotRef {
	var out []SlotRef
	for p := range g.Players {
		out = append(out, g.ownSlots(uint8(p), true)...)
	}
	return out
}

// swapPairs returns every unordered pair of distinct non-empty slots across
// all hands. RAT slots are included; a slot never pairs with itself.
func (g *GameState) swapPairs() []Action {
	slots := g.allSlots()
	var out []Action
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			out = append(out, Swap(slots[i], slots[j]))
		}
	}
	return out
}
