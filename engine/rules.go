package engine

import "fmt"

// MaxPlayers is the largest table the engine accepts.
const MaxPlayers = 4

// EffectTrigger selects when an action card's effect starts.
type EffectTrigger uint8

const (
	// TriggerOnDiscard starts the effect when the drawn card is discarded.
	TriggerOnDiscard EffectTrigger = iota
	// TriggerOnDraw discards an action card drawn from the pile immediately
	// and starts its effect without a decide step.
	TriggerOnDraw
)

func (t EffectTrigger) String() string {
	if t == TriggerOnDraw {
		return "draw"
	}
	return "discard"
}

// DeckComposition describes the multiset of cards a round is built from.
type DeckComposition struct {
	MinValue       uint8
	MaxValue       uint8
	CopiesPerValue uint8
	StoolPigeons   uint8
	Bamboozles     uint8
	Vendettas      uint8
	Kingpins       uint8
	Rats           uint8
	Meatballs      uint8
}

// CanonicalDeck is the 56-card deck: 2..10 four times, four of each action
// card, two RATs and two MEATBALLs.
func CanonicalDeck() DeckComposition {
	return DeckComposition{
		MinValue:       2,
		MaxValue:       10,
		CopiesPerValue: 4,
		StoolPigeons:   4,
		Bamboozles:     4,
		Vendettas:      4,
		Kingpins:       4,
		Rats:           2,
		Meatballs:      2,
	}
}

// PrototypeDeck is the 42-card alternate: 1..12 twice, four Stool Pigeons,
// Bamboozles and Vendettas, two of everything else.
func PrototypeDeck() DeckComposition {
	return DeckComposition{
		MinValue:       1,
		MaxValue:       12,
		CopiesPerValue: 2,
		StoolPigeons:   4,
		Bamboozles:     4,
		Vendettas:      4,
		Kingpins:       2,
		Rats:           2,
		Meatballs:      2,
	}
}

// Size returns the number of cards in the composition.
func (d DeckComposition) Size() int {
	n := 0
	if d.MaxValue >= d.MinValue {
		n = int(d.MaxValue-d.MinValue+1) * int(d.CopiesPerValue)
	}
	return n + int(d.StoolPigeons) + int(d.Bamboozles) + int(d.Vendettas) +
		int(d.Kingpins) + int(d.Rats) + int(d.Meatballs)
}

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	NumPlayers           uint8 // 2–4; 0 treated as 2
	CardsPerPlayer       uint8
	FaceDownSlots        uint8 // leading slots hidden from their owner
	Deck                 DeckComposition
	AllowDrawFromDiscard bool
	EffectTrigger        EffectTrigger
	PigeonSwap           bool   // Stool Pigeon may be swapped into the actor's hand after the peek
	MaxTurns             uint16 // 0 = unlimited
}

// DefaultHouseRules returns the canonical two-player rules.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		NumPlayers:           2,
		CardsPerPlayer:       4,
		FaceDownSlots:        2,
		Deck:                 CanonicalDeck(),
		AllowDrawFromDiscard: true,
		EffectTrigger:        TriggerOnDiscard,
		PigeonSwap:           false,
		MaxTurns:             0,
	}
}

// numPlayers returns the effective number of players, treating 0 as 2.
func (r *HouseRules) numPlayers() uint8 {
	if r.NumPlayers == 0 {
		return 2
	}
	return r.NumPlayers
}

// Validate reports whether a round can be dealt under these rules.
func (r *HouseRules) Validate() error {
	n := r.numPlayers()
	if n < 2 || n > MaxPlayers {
		return fmt.Errorf("num players %d out of range [2, %d]", n, MaxPlayers)
	}
	if r.CardsPerPlayer == 0 {
		return fmt.Errorf("cards per player must be positive")
	}
	if r.FaceDownSlots > r.CardsPerPlayer {
		return fmt.Errorf("face-down slots %d exceed cards per player %d", r.FaceDownSlots, r.CardsPerPlayer)
	}
	if r.Deck.MaxValue > 15 || r.Deck.MinValue > r.Deck.MaxValue {
		return fmt.Errorf("deck value range [%d, %d] invalid", r.Deck.MinValue, r.Deck.MaxValue)
	}
	if r.EffectTrigger > TriggerOnDraw {
		return fmt.Errorf("unknown effect trigger %d", r.EffectTrigger)
	}
	need := int(n)*int(r.CardsPerPlayer) + 1
	if size := r.Deck.Size(); size < need {
		return fmt.Errorf("deck of %d cards cannot deal %d hands of %d", size, n, r.CardsPerPlayer)
	}
	return nil
}
