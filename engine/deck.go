package engine

// Source is a source of uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Uint64N(n uint64) uint64
}

// BuildDeck returns the multiset described by comp in deterministic order:
// numbered cards ascending, then action cards, then RATs and MEATBALLs.
func BuildDeck(comp DeckComposition) []Card {
	deck := make([]Card, 0, comp.Size())
	for v := int(comp.MinValue); v <= int(comp.MaxValue); v++ {
		for c := uint8(0); c < comp.CopiesPerValue; c++ {
			deck = append(deck, Numbered(uint8(v)))
		}
	}
	add := func(t CardType, count uint8) {
		for i := uint8(0); i < count; i++ {
			deck = append(deck, NewCard(t, 0))
		}
	}
	add(TypeStoolPigeon, comp.StoolPigeons)
	add(TypeBamboozle, comp.Bamboozles)
	add(TypeVendetta, comp.Vendettas)
	add(TypeKingpin, comp.Kingpins)
	add(TypeRat, comp.Rats)
	add(TypeMeatball, comp.Meatballs)
	return deck
}

// Shuffle permutes cards in place with a Fisher-Yates shuffle.
func Shuffle(cards []Card, src Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := int(src.Uint64N(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// ---------------------------------------------------------------------------
// xorshift64 RNG, stored in the state so it stays a plain value
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// stateSource adapts the in-state RNG to Source.
type stateSource struct{ g *GameState }

func (s stateSource) Uint64N(n uint64) uint64 { return s.g.nextRand() % n }
