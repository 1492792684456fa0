// Package engine implements the Stool Pigeon card game rules.
//
// The whole round lives in one GameState value: hands, piles, phase, the
// in-flight drawn card, knock tracking, per-player memory and the RNG. The
// only mutator is ApplyAction; LegalActions, Scores and friends are pure
// queries. Nothing in the package holds ambient state, so a state can be
// cloned, compared or replayed freely.
package engine

import "fmt"

// PlayerState holds one player's hand and what that player remembers.
// Hand slots keep their index for the whole round; an eliminated slot holds
// EmptyCard.
type PlayerState struct {
	Hand   []Card
	Memory Memory
}

// GameState holds the complete, self-contained state of a round.
type GameState struct {
	Players         []PlayerState
	DrawPile        []Card // top = last element
	DiscardPile     []Card // top = last element
	CurrentPlayer   uint8
	Phase           Phase
	KnockedBy       int8 // -1 until someone knocks
	DrawnCard       Card // EmptyCard when nothing is in flight
	DrawnFrom       DrawSource
	PendingEffect   CardType // TypeNone outside effect phases
	TurnsSinceKnock uint8
	TurnNumber      uint16
	RNG             uint64
	Rules           HouseRules
	LastAction      LastActionInfo
}

// ---------------------------------------------------------------------------
// NewGame
// ---------------------------------------------------------------------------

// NewGame builds the deck, shuffles it with the seeded RNG and deals
// CardsPerPlayer cards to each player, alternating. The discard pile starts
// empty and player 0 moves first.
func NewGame(seed uint64, rules HouseRules) (GameState, error) {
	var g GameState
	if err := rules.Validate(); err != nil {
		return g, fmt.Errorf("new game: %w", err)
	}
	rules.NumPlayers = rules.numPlayers()

	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.KnockedBy = -1
	g.DrawnCard = EmptyCard
	g.PendingEffect = TypeNone
	g.Phase = PhaseDraw

	g.DrawPile = BuildDeck(rules.Deck)
	Shuffle(g.DrawPile, stateSource{&g})
	g.deal()
	return g, nil
}

func (g *GameState) deal() {
	n := g.Rules.NumPlayers
	g.Players = make([]PlayerState, n)
	for p := range g.Players {
		g.Players[p].Hand = make([]Card, 0, g.Rules.CardsPerPlayer+2)
	}
	for c := uint8(0); c < g.Rules.CardsPerPlayer; c++ {
		for p := uint8(0); p < n; p++ {
			g.Players[p].Hand = append(g.Players[p].Hand, g.popDraw())
		}
	}
	for p := range g.Players {
		g.Players[p].Memory = newMemory(uint8(p), g.Players)
	}
	g.syncFaceUp()
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsTerminal returns true once the round has ended.
func (g *GameState) IsTerminal() bool { return g.Phase == PhaseGameOver }

// NumPlayers returns the number of seated players.
func (g *GameState) NumPlayers() uint8 { return uint8(len(g.Players)) }

// ActingPlayer returns the player who must act next. Effects are resolved by
// the player whose turn it is.
func (g *GameState) ActingPlayer() uint8 { return g.CurrentPlayer }

// IsKnocked reports whether a knock has frozen the round.
func (g *GameState) IsKnocked() bool { return g.KnockedBy >= 0 }

// DiscardTop returns the top card of the discard pile, or EmptyCard if empty.
func (g *GameState) DiscardTop() Card {
	if len(g.DiscardPile) == 0 {
		return EmptyCard
	}
	return g.DiscardPile[len(g.DiscardPile)-1]
}

// DrawTop returns the top card of the draw pile, or EmptyCard if empty.
func (g *GameState) DrawTop() Card {
	if len(g.DrawPile) == 0 {
		return EmptyCard
	}
	return g.DrawPile[len(g.DrawPile)-1]
}

// HandLen returns the number of slots, empty ones included, in a player's hand.
func (g *GameState) HandLen(player uint8) int { return len(g.Players[player].Hand) }

// CardCount returns the number of non-empty slots in a player's hand.
func (g *GameState) CardCount(player uint8) int {
	n := 0
	for _, c := range g.Players[player].Hand {
		if c != EmptyCard {
			n++
		}
	}
	return n
}

// NextPlayer returns the next player after current in turn order.
func (g *GameState) NextPlayer(current uint8) uint8 {
	return (current + 1) % g.NumPlayers()
}

// Opponents returns all player indices except the given player.
func (g *GameState) Opponents(player uint8) []uint8 {
	n := g.NumPlayers()
	opps := make([]uint8, 0, n-1)
	for i := uint8(0); i < n; i++ {
		if i != player {
			opps = append(opps, i)
		}
	}
	return opps
}

// TotalCards counts every card the round owns: both piles, non-empty hand
// slots and the in-flight drawn card. It equals the deck size at all times.
func (g *GameState) TotalCards() int {
	n := len(g.DrawPile) + len(g.DiscardPile)
	for p := range g.Players {
		n += g.CardCount(uint8(p))
	}
	if g.DrawnCard != EmptyCard {
		n++
	}
	return n
}

// canSupplyCard reports whether a card can be taken from the draw pile,
// reshuffling the discard pile if needed.
func (g *GameState) canSupplyCard() bool {
	return len(g.DrawPile) > 0 || len(g.DiscardPile) > 1
}

func (g *GameState) validRef(ref SlotRef) bool {
	return int(ref.Player) < len(g.Players) && int(ref.Slot) < len(g.Players[ref.Player].Hand)
}

func (g *GameState) cardAt(ref SlotRef) Card { return g.Players[ref.Player].Hand[ref.Slot] }

func (g *GameState) setCard(ref SlotRef, c Card) { g.Players[ref.Player].Hand[ref.Slot] = c }

// ---------------------------------------------------------------------------
// Pile helpers
// ---------------------------------------------------------------------------

func (g *GameState) popDraw() Card {
	last := len(g.DrawPile) - 1
	c := g.DrawPile[last]
	g.DrawPile = g.DrawPile[:last]
	return c
}

func (g *GameState) popDiscard() Card {
	last := len(g.DiscardPile) - 1
	c := g.DiscardPile[last]
	g.DiscardPile = g.DiscardPile[:last]
	return c
}

func (g *GameState) pushDiscard(c Card) { g.DiscardPile = append(g.DiscardPile, c) }

// attemptReshuffle moves all discard cards except the top back into the draw
// pile and shuffles them. It reports whether anything was moved.
func (g *GameState) attemptReshuffle() bool {
	if len(g.DiscardPile) <= 1 {
		return false
	}
	top := g.DiscardPile[len(g.DiscardPile)-1]
	g.DrawPile = append(g.DrawPile, g.DiscardPile[:len(g.DiscardPile)-1]...)
	g.DiscardPile = append(g.DiscardPile[:0], top)
	Shuffle(g.DrawPile, stateSource{g})
	g.LastAction.Reshuffle = true
	return true
}

// ---------------------------------------------------------------------------
// Clone
// ---------------------------------------------------------------------------

// Clone returns a deep copy that shares no slices with g.
func (g *GameState) Clone() GameState {
	c := *g
	c.DrawPile = cloneCards(g.DrawPile)
	c.DiscardPile = cloneCards(g.DiscardPile)
	c.Players = make([]PlayerState, len(g.Players))
	for p := range g.Players {
		c.Players[p].Hand = cloneCards(g.Players[p].Hand)
		c.Players[p].Memory = g.Players[p].Memory.clone()
	}
	return c
}

func cloneCards(s []Card) []Card {
	if s == nil {
		return nil
	}
	return append(make([]Card, 0, len(s)), s...)
}
