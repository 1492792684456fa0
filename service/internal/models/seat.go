// Package models holds the identity types shared by the session and storage
// layers.
package models

import "github.com/google/uuid"

// SeatKind distinguishes a person at the keyboard from an automated policy.
type SeatKind string

const (
	SeatHuman SeatKind = "human"
	SeatAgent SeatKind = "agent"
)

// Seat is one chair at the table. Index is the engine player index and is
// fixed once the session starts.
type Seat struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Kind  SeatKind  `json:"kind"`
	Index uint8     `json:"index"`
}

// NewSeat returns a seat with a fresh random ID.
func NewSeat(name string, kind SeatKind) *Seat {
	return &Seat{ID: uuid.New(), Name: name, Kind: kind}
}

// IsAgent reports whether the seat is played by a policy.
func (s *Seat) IsAgent() bool { return s.Kind == SeatAgent }

// GameResult is the stored outcome of one finished round.
type GameResult struct {
	ID          uuid.UUID `json:"id"`
	GameID      uuid.UUID `json:"gameId"`
	Seats       []string  `json:"seats"`
	Scores      []int     `json:"scores"`
	WinnerIndex int       `json:"winnerIndex"` // -1 on a tie
	KnockedBy   int       `json:"knockedBy"`   // -1 if nobody knocked
	Turns       int       `json:"turns"`
	Fingerprint uint64    `json:"fingerprint"`
}

// Tied reports whether the round ended without a single winner.
func (r GameResult) Tied() bool { return r.WinnerIndex < 0 }
