package engine

// startEffect enters the first sub-phase of an action card's effect. The
// triggering card is already on the discard pile.
func (g *GameState) startEffect(t CardType) {
	g.DrawnCard = EmptyCard
	g.DrawnFrom = DrawnFromNone
	g.PendingEffect = t
	switch t {
	case TypeStoolPigeon:
		g.Phase = PhaseStoolPigeonPeek
	case TypeBamboozle:
		g.Phase = PhaseBamboozleSelect
	case TypeVendetta:
		g.Phase = PhaseVendettaPeek
	case TypeKingpin:
		g.Phase = PhaseKingpinChoose
	default:
		g.endTurn()
	}
}

// advanceEffect moves past the current sub-phase. A peek leads to the swap
// step when the effect has one; every other step finishes the effect.
func (g *GameState) advanceEffect() {
	switch {
	case g.Phase == PhaseVendettaPeek:
		g.Phase = PhaseVendettaSwap
	case g.Phase == PhaseStoolPigeonPeek && g.Rules.PigeonSwap:
		g.Phase = PhaseStoolPigeonSwap
	default:
		g.PendingEffect = TypeNone
		g.endTurn()
	}
}

// peek reveals ref to the acting player only.
func (g *GameState) peek(ref SlotRef) {
	g.observe(g.CurrentPlayer, ref)
	g.LastAction.Revealed = g.cardAt(ref)
	g.advanceEffect()
}

// swap exchanges two slots in any hands. Nobody keeps a memory of either slot.
func (g *GameState) swap(a, b SlotRef) {
	ca, cb := g.cardAt(a), g.cardAt(b)
	g.setCard(a, cb)
	g.setCard(b, ca)
	g.forgetAll(a)
	g.forgetAll(b)
	g.advanceEffect()
}

// pigeonSwap moves the Stool Pigeon on top of the discard pile into the
// actor's slot; the replaced card takes its place on the pile.
func (g *GameState) pigeonSwap(ref SlotRef) {
	pigeon := g.popDiscard()
	old := g.cardAt(ref)
	g.setCard(ref, pigeon)
	g.pushDiscard(old)
	g.LastAction.Moved = old
	g.forgetAll(ref)
	g.observe(g.CurrentPlayer, ref)
	g.advanceEffect()
}

// eliminate discards the card in ref and leaves an empty slot behind. The
// slot keeps its index.
func (g *GameState) eliminate(ref SlotRef) {
	c := g.cardAt(ref)
	g.setCard(ref, EmptyCard)
	g.pushDiscard(c)
	g.LastAction.Moved = c
	g.forgetAll(ref)
	g.advanceEffect()
}

// kingpinAdd appends the draw-pile top to target's hand as a new face-down slot.
func (g *GameState) kingpinAdd(target uint8) {
	if len(g.DrawPile) == 0 {
		g.attemptReshuffle()
	}
	c := g.popDraw()
	hand := &g.Players[target].Hand
	*hand = append(*hand, c)
	for p := range g.Players {
		g.Players[p].Memory.grow(target)
	}
	g.LastAction.Added = SlotRef{Player: target, Slot: uint8(len(*hand) - 1)}
	g.advanceEffect()
}
