package engine

// PlayerView is everything one player is entitled to see: public pile
// information, the hands as that player remembers them, the card in their
// own hand and, on their turn, the legal actions. It shares no slices with
// the state it came from.
type PlayerView struct {
	Viewer        uint8
	Acting        uint8
	Phase         Phase
	TurnNumber    uint16
	KnockedBy     int8
	PendingEffect CardType
	DrawnCard     Card // EmptyCard unless Viewer is holding one
	DrawPileSize  int
	DiscardPile   []Card // face up, top = last element
	// Hands[p][i] is the card Viewer may see at slot p:i, EmptyCard for an
	// eliminated slot, or UnknownCard.
	Hands [][]Card
	Legal []Action // nil unless Viewer is acting
}

// ViewFor builds the view of the round available to viewer.
func (g *GameState) ViewFor(viewer uint8) PlayerView {
	v := PlayerView{
		Viewer:        viewer,
		Acting:        g.ActingPlayer(),
		Phase:         g.Phase,
		TurnNumber:    g.TurnNumber,
		KnockedBy:     g.KnockedBy,
		PendingEffect: g.PendingEffect,
		DrawnCard:     EmptyCard,
		DrawPileSize:  len(g.DrawPile),
		DiscardPile:   cloneCards(g.DiscardPile),
		Hands:         make([][]Card, len(g.Players)),
	}
	for p := range g.Players {
		hand := make([]Card, len(g.Players[p].Hand))
		for i := range hand {
			c, ok := g.Visible(viewer, SlotRef{uint8(p), uint8(i)})
			if !ok {
				c = UnknownCard
			}
			hand[i] = c
		}
		v.Hands[p] = hand
	}
	if viewer == g.CurrentPlayer && !g.IsTerminal() {
		v.DrawnCard = g.DrawnCard
		v.Legal = g.LegalActions()
	}
	return v
}

// IsTerminal reports whether the round was over when the view was taken.
func (v *PlayerView) IsTerminal() bool { return v.Phase == PhaseGameOver }

// IsLegal reports whether a is among the viewer's legal actions.
func (v *PlayerView) IsLegal(a Action) bool {
	a = a.normalize()
	for _, l := range v.Legal {
		if l == a {
			return true
		}
	}
	return false
}
