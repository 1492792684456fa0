package engine

// Memory is one player's private, possibly stale record of which card occupies
// each slot of every hand. Slots[p][i] is the last card the owner saw in
// player p's slot i, or UnknownCard. Memory never affects legality or scoring.
type Memory struct {
	Owner uint8
	Slots [][]Card
}

func newMemory(owner uint8, players []PlayerState) Memory {
	m := Memory{Owner: owner, Slots: make([][]Card, len(players))}
	for p := range players {
		m.Slots[p] = make([]Card, len(players[p].Hand))
		for i := range m.Slots[p] {
			m.Slots[p][i] = UnknownCard
		}
	}
	return m
}

// Known returns the remembered card at ref. Eliminated slots are forgotten;
// use GameState.Visible to learn that a slot is empty.
func (m *Memory) Known(ref SlotRef) (Card, bool) {
	if int(ref.Player) >= len(m.Slots) || int(ref.Slot) >= len(m.Slots[ref.Player]) {
		return UnknownCard, false
	}
	c := m.Slots[ref.Player][ref.Slot]
	return c, c != UnknownCard
}

// OwnKnown returns the owner's remembered cards by slot.
func (m *Memory) OwnKnown() map[uint8]Card { return m.KnownOf(m.Owner) }

// KnownOf returns the remembered cards of player p by slot.
func (m *Memory) KnownOf(p uint8) map[uint8]Card {
	out := make(map[uint8]Card)
	if int(p) >= len(m.Slots) {
		return out
	}
	for i, c := range m.Slots[p] {
		if c != UnknownCard {
			out[uint8(i)] = c
		}
	}
	return out
}

func (m *Memory) remember(ref SlotRef, c Card) {
	if int(ref.Player) < len(m.Slots) && int(ref.Slot) < len(m.Slots[ref.Player]) {
		m.Slots[ref.Player][ref.Slot] = c
	}
}

func (m *Memory) forget(ref SlotRef) { m.remember(ref, UnknownCard) }

// grow appends an unknown slot for player p, mirroring a Kingpin add.
func (m *Memory) grow(p uint8) {
	m.Slots[p] = append(m.Slots[p], UnknownCard)
}

func (m *Memory) clone() Memory {
	c := Memory{Owner: m.Owner, Slots: make([][]Card, len(m.Slots))}
	for p := range m.Slots {
		c.Slots[p] = cloneCards(m.Slots[p])
	}
	return c
}

// ---------------------------------------------------------------------------
// Memory updates driven by actions
// ---------------------------------------------------------------------------

// observe records the true content of ref in the viewer's memory.
func (g *GameState) observe(viewer uint8, ref SlotRef) {
	g.Players[viewer].Memory.remember(ref, g.cardAt(ref))
}

// forgetAll invalidates ref for every player.
func (g *GameState) forgetAll(ref SlotRef) {
	for p := range g.Players {
		g.Players[p].Memory.forget(ref)
	}
}

// syncFaceUp re-reveals every owner's face-up slots, which the owner can see
// at all times. Slots added by a Kingpin are always face-down.
func (g *GameState) syncFaceUp() {
	for p := range g.Players {
		hand := g.Players[p].Hand
		for i := int(g.Rules.FaceDownSlots); i < int(g.Rules.CardsPerPlayer) && i < len(hand); i++ {
			g.Players[p].Memory.remember(SlotRef{uint8(p), uint8(i)}, hand[i])
		}
	}
}

// Visible returns the card viewer may render face up at ref. Empty slots are
// public; everything else comes from the viewer's memory.
func (g *GameState) Visible(viewer uint8, ref SlotRef) (Card, bool) {
	if !g.validRef(ref) || int(viewer) >= len(g.Players) {
		return UnknownCard, false
	}
	if g.cardAt(ref) == EmptyCard {
		return EmptyCard, true
	}
	return g.Players[viewer].Memory.Known(ref)
}
