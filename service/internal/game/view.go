package game

import (
	"github.com/google/uuid"
	"github.com/hcarminati/Stool-Pidgeon/engine"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/models"
)

// ObfCard is one hand slot as a particular viewer may render it. Card is set
// only when Known.
type ObfCard struct {
	Slot  int    `json:"slot"`
	Empty bool   `json:"empty"`
	Known bool   `json:"known"`
	Card  string `json:"card,omitempty"`
	Value int    `json:"value,omitempty"`
}

// ObfPlayerState is one seat as seen by the viewer.
type ObfPlayerState struct {
	SeatID        uuid.UUID       `json:"seatId"`
	Name          string          `json:"name"`
	Kind          models.SeatKind `json:"kind"`
	Index         int             `json:"index"`
	CardCount     int             `json:"cardCount"`
	Slots         []ObfCard       `json:"slots"`
	HasKnocked    bool            `json:"hasKnocked"`
	IsCurrentTurn bool            `json:"isCurrentTurn"`
	// Estimate is the viewer's expected score for this seat.
	Estimate float64 `json:"estimate"`
	// DrawnCard is populated only for the viewer's own seat.
	DrawnCard *ObfCard `json:"drawnCard,omitempty"`
}

// ObfGameState is the whole round obfuscated for one seat.
type ObfGameState struct {
	GameID        uuid.UUID        `json:"gameId"`
	ViewerID      uuid.UUID        `json:"viewerId"`
	Started       bool             `json:"started"`
	GameOver      bool             `json:"gameOver"`
	Phase         string           `json:"phase"`
	CurrentSeatID uuid.UUID        `json:"currentSeatId"`
	TurnNumber    int              `json:"turnNumber"`
	DrawPileSize  int              `json:"drawPileSize"`
	DiscardSize   int              `json:"discardSize"`
	DiscardTop    *ObfCard         `json:"discardTop,omitempty"`
	Knocked       bool             `json:"knocked"`
	Players       []ObfPlayerState `json:"players"`
	LegalActions  []string         `json:"legalActions,omitempty"`

	// Filled once the round is over.
	Scores   []int      `json:"scores,omitempty"`
	WinnerID *uuid.UUID `json:"winnerId,omitempty"`
}

// View returns the state as the given seat may see it.
func (s *Session) View(seatID uuid.UUID) (ObfGameState, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	seat, err := s.seatByID(seatID)
	if err != nil {
		return ObfGameState{}, err
	}
	if !s.Started {
		return ObfGameState{}, ErrNotStarted
	}
	return s.obfuscatedState(seat.Index), nil
}

func faceUp(slot int, c engine.Card) ObfCard {
	return ObfCard{Slot: slot, Known: true, Card: c.String(), Value: int(c.Value())}
}

// obfuscatedState builds the viewer's snapshot from the viewer's own memory.
// Every slot is revealed once the round is over.
// Assumes lock is held by caller.
func (s *Session) obfuscatedState(viewer uint8) ObfGameState {
	g := &s.Engine
	over := g.IsTerminal()
	obf := ObfGameState{
		GameID:        s.ID,
		ViewerID:      s.Seats[viewer].ID,
		Started:       s.Started,
		GameOver:      over,
		Phase:         g.Phase.String(),
		CurrentSeatID: s.Seats[g.ActingPlayer()].ID,
		TurnNumber:    int(g.TurnNumber),
		DrawPileSize:  len(g.DrawPile),
		DiscardSize:   len(g.DiscardPile),
		Knocked:       g.IsKnocked(),
	}
	if top := g.DiscardTop(); top != engine.EmptyCard {
		c := faceUp(-1, top)
		obf.DiscardTop = &c
	}

	obf.Players = make([]ObfPlayerState, len(s.Seats))
	for p, seat := range s.Seats {
		pi := uint8(p)
		ps := ObfPlayerState{
			SeatID:        seat.ID,
			Name:          seat.Name,
			Kind:          seat.Kind,
			Index:         p,
			CardCount:     g.CardCount(pi),
			HasKnocked:    g.KnockedBy == int8(p),
			IsCurrentTurn: !over && g.ActingPlayer() == pi,
			Estimate:      g.EstimateScore(viewer, pi),
			Slots:         make([]ObfCard, g.HandLen(pi)),
		}
		for i := range ps.Slots {
			ref := engine.SlotRef{Player: pi, Slot: uint8(i)}
			actual := g.Players[pi].Hand[i]
			switch {
			case actual == engine.EmptyCard:
				ps.Slots[i] = ObfCard{Slot: i, Empty: true, Known: true}
			case over:
				ps.Slots[i] = faceUp(i, actual)
			default:
				if c, ok := g.Visible(viewer, ref); ok {
					ps.Slots[i] = faceUp(i, c)
				} else {
					ps.Slots[i] = ObfCard{Slot: i}
				}
			}
		}
		if pi == viewer && g.DrawnCard != engine.EmptyCard {
			c := faceUp(-1, g.DrawnCard)
			ps.DrawnCard = &c
		}
		obf.Players[p] = ps
	}

	if over {
		obf.Scores = g.Scores()
		if w, ok := g.Winner(); ok {
			id := s.Seats[w].ID
			obf.WinnerID = &id
		}
	} else if g.ActingPlayer() == viewer {
		for _, a := range g.LegalActions() {
			obf.LegalActions = append(obf.LegalActions, a.String())
		}
	}
	return obf
}
