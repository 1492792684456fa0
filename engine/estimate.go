package engine

// ---------------------------------------------------------------------------
// Fingerprint
// ---------------------------------------------------------------------------

// Fingerprint returns an FNV-1a hash of hands, piles, turn and knock state.
// Equal states always hash equal; it identifies deals in result records.
func (g *GameState) Fingerprint() uint64 {
	h := uint64(14695981039346656037) // FNV-1a offset basis
	const prime = uint64(1099511628211)

	for p := range g.Players {
		for _, c := range g.Players[p].Hand {
			h ^= uint64(c)
			h *= prime
		}
		h ^= uint64(len(g.Players[p].Hand)) << 8
		h *= prime
	}
	for _, c := range g.DrawPile {
		h ^= uint64(c)
		h *= prime
	}
	for _, c := range g.DiscardPile {
		h ^= uint64(c)
		h *= prime
	}
	h ^= uint64(g.Phase) << 16
	h *= prime
	h ^= uint64(g.TurnNumber) << 32
	h *= prime
	h ^= uint64(g.CurrentPlayer) << 48
	h *= prime
	if g.KnockedBy >= 0 {
		h ^= uint64(g.KnockedBy+1) << 56
		h *= prime
	}
	return h
}

// ---------------------------------------------------------------------------
// EstimateScore: display-only expectation from one player's point of view
// ---------------------------------------------------------------------------

// EstimateScore returns viewer's expectation of target's hand total, by
// linearity of expectation: remembered cards count at face value, every
// unknown slot counts as the mean of the cards viewer has not accounted for.
// A RAT counts as the mean numbered value of the deck. Stale memories are
// taken at face value.
func (g *GameState) EstimateScore(viewer, target uint8) float64 {
	ratGuess := g.meanNumbered()
	unseen := g.unseenPool(viewer)

	var poolSum float64
	for _, c := range unseen {
		poolSum += cardExpectation(c, ratGuess)
	}
	var mu float64
	if len(unseen) > 0 {
		mu = poolSum / float64(len(unseen))
	}

	mem := &g.Players[viewer].Memory
	var total float64
	for i, c := range g.Players[target].Hand {
		if c == EmptyCard {
			continue
		}
		if known, ok := mem.Known(SlotRef{target, uint8(i)}); ok && known != EmptyCard {
			total += cardExpectation(known, ratGuess)
			continue
		}
		total += mu
	}
	return total
}

func cardExpectation(c Card, ratGuess float64) float64 {
	if c.Type() == TypeRat {
		return ratGuess
	}
	return float64(c.ScoreValue(0))
}

// meanNumbered is the mean value of the numbered cards in the deck composition.
func (g *GameState) meanNumbered() float64 {
	d := g.Rules.Deck
	if d.CopiesPerValue == 0 || d.MaxValue < d.MinValue {
		return 0
	}
	return float64(int(d.MinValue)+int(d.MaxValue)) / 2
}

// unseenPool returns the deck minus the public discard pile and minus every
// card viewer currently remembers in any hand.
func (g *GameState) unseenPool(viewer uint8) []Card {
	counts := make(map[Card]int)
	for _, c := range BuildDeck(g.Rules.Deck) {
		counts[c]++
	}
	for _, c := range g.DiscardPile {
		counts[c]--
	}
	if g.CurrentPlayer == viewer && g.DrawnCard != EmptyCard {
		counts[g.DrawnCard]--
	}
	mem := &g.Players[viewer].Memory
	for p := range mem.Slots {
		for _, c := range mem.Slots[p] {
			if c != UnknownCard && c != EmptyCard {
				counts[c]--
			}
		}
	}
	var out []Card
	for c, n := range counts {
		for ; n > 0; n-- {
			out = append(out, c)
		}
	}
	return out
}
