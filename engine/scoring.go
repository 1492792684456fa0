package engine

// RatReference returns what a RAT is worth when top is the draw-pile top: the
// card's value if it is numbered, otherwise 0.
func RatReference(top Card) int {
	if top.Type() != TypeNumbered {
		return 0
	}
	return int(top.Value())
}

// ScoreHand sums the score values of the non-empty slots in hand.
func ScoreHand(hand []Card, drawTop Card) int {
	ref := RatReference(drawTop)
	total := 0
	for _, c := range hand {
		if c == EmptyCard {
			continue
		}
		total += c.ScoreValue(ref)
	}
	return total
}

// Scores returns every player's hand total. It depends only on the hands and
// the draw-pile top, so it is meaningful mid-round too.
func (g *GameState) Scores() []int {
	top := g.DrawTop()
	out := make([]int, len(g.Players))
	for p := range g.Players {
		out[p] = ScoreHand(g.Players[p].Hand, top)
	}
	return out
}

// Winner returns the player with the strictly lowest score. ok is false on a
// tie for the lowest score and before the round is over.
func (g *GameState) Winner() (winner uint8, ok bool) {
	if !g.IsTerminal() {
		return 0, false
	}
	scores := g.Scores()
	best := 0
	tied := false
	for p := 1; p < len(scores); p++ {
		switch {
		case scores[p] < scores[best]:
			best, tied = p, false
		case scores[p] == scores[best]:
			tied = true
		}
	}
	if tied {
		return 0, false
	}
	return uint8(best), true
}
