package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hcarminati/Stool-Pidgeon/engine"
)

// GameEventType represents the type of a game-related event.
type GameEventType string

// Public events go to every seat through BroadcastFn; private_* events go to
// a single seat through BroadcastToPlayerFn.
const (
	EventPlayerDraw             GameEventType = "player_draw"              // Public: card shown only when taken from the discard pile.
	EventPlayerDiscard          GameEventType = "player_discard"           // Public: discarded card is face up.
	EventPlayerKeep             GameEventType = "player_keep"              // Public: slot replaced, old card face up on the discard pile.
	EventPlayerKnock            GameEventType = "player_knock"             // Public: round frozen.
	EventPlayerPeek             GameEventType = "player_peek"              // Public: which slot was peeked, not its card.
	EventPlayerSwap             GameEventType = "player_swap"              // Public: the two slots exchanged.
	EventPlayerPigeonSwap       GameEventType = "player_pigeon_swap"       // Public: pigeon moved into a slot.
	EventPlayerKingpinChoice    GameEventType = "player_kingpin_choice"    // Public: eliminate or add.
	EventPlayerKingpinEliminate GameEventType = "player_kingpin_eliminate" // Public: slot emptied, card face up.
	EventPlayerKingpinAdd       GameEventType = "player_kingpin_add"       // Public: target received a face-down card.
	EventPlayerSkipEffect       GameEventType = "player_skip_effect"       // Public: effect step skipped.
	EventGameReshuffle          GameEventType = "game_reshuffle"           // Public: discard pile shuffled back into the draw pile.
	EventGamePlayerTurn         GameEventType = "game_player_turn"         // Public: whose turn it is.
	EventGameEnd                GameEventType = "game_end"                 // Public: final hands, scores and winner.
	EventPrivateDraw            GameEventType = "private_draw"             // Private: the drawn card.
	EventPrivatePeek            GameEventType = "private_peek"             // Private: the peeked card.
	EventPrivateActionFail      GameEventType = "private_action_fail"      // Private: a rejected submission.
	EventPrivateSyncState       GameEventType = "private_sync_state"       // Private: full obfuscated state.
)

// EventUser identifies a seat within a GameEvent payload.
type EventUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Index int       `json:"index"`
}

// EventCard identifies a card or a hand slot within a GameEvent payload. Face
// fields are empty when the card is hidden from the recipient.
type EventCard struct {
	Label string     `json:"label,omitempty"` // "7", "PIGEON", "RAT", ...
	Type  string     `json:"type,omitempty"`
	Value int        `json:"value,omitempty"`
	Idx   *int       `json:"idx,omitempty"`  // slot index, if the card is in a hand
	User  *EventUser `json:"user,omitempty"` // slot owner
}

// GameEvent is the standard structure for broadcasting game state changes.
type GameEvent struct {
	Type  GameEventType `json:"type"`
	Turn  int           `json:"turn"`
	User  *EventUser    `json:"user,omitempty"`  // acting or targeted seat
	Card  *EventCard    `json:"card,omitempty"`  // primary card involved
	Card1 *EventCard    `json:"card1,omitempty"` // first slot of a two-slot action
	Card2 *EventCard    `json:"card2,omitempty"` // second slot of a two-slot action

	Payload map[string]interface{} `json:"payload,omitempty"`

	State *ObfGameState `json:"state,omitempty"` // for private_sync_state
}

func cardFace(c engine.Card) *EventCard {
	return &EventCard{Label: c.String(), Type: c.Type().String(), Value: int(c.Value())}
}

// eventUser describes the seat at engine index p.
func (s *Session) eventUser(p uint8) *EventUser {
	seat := s.Seats[p]
	return &EventUser{ID: seat.ID, Name: seat.Name, Index: int(p)}
}

// slotCard describes a hand slot without its face.
func (s *Session) slotCard(ref engine.SlotRef) *EventCard {
	idx := int(ref.Slot)
	return &EventCard{Idx: &idx, User: s.eventUser(ref.Player)}
}

// fireEvent sends an event to every seat. Assumes lock is held by caller.
func (s *Session) fireEvent(ev GameEvent) {
	ev.Turn = int(s.Engine.TurnNumber)
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event to one seat. Assumes lock is held by caller.
func (s *Session) fireEventToPlayer(seatID uuid.UUID, ev GameEvent) {
	ev.Turn = int(s.Engine.TurnNumber)
	if s.BroadcastToPlayerFn != nil {
		s.BroadcastToPlayerFn(seatID, ev)
	}
}

// preAction is what emitEventsForAction needs from before the action.
type preAction struct {
	phase  engine.Phase
	player uint8
	turn   uint16
}

// emitEventsForAction broadcasts the events for the action just applied and
// records it in the action log. Assumes lock is held by caller.
func (s *Session) emitEventsForAction(pre preAction) {
	last := s.Engine.LastAction
	a := last.Action
	actor := last.Actor
	actorID := s.Seats[actor].ID
	user := s.eventUser(actor)
	payload := map[string]interface{}{"action": a.String()}

	switch a.Kind {
	case engine.ActDrawPile:
		s.fireEvent(GameEvent{
			Type:    EventPlayerDraw,
			User:    user,
			Payload: map[string]interface{}{"source": "pile", "drawPileSize": len(s.Engine.DrawPile)},
		})
		s.fireEventToPlayer(actorID, GameEvent{
			Type:    EventPrivateDraw,
			Card:    cardFace(last.Revealed),
			Payload: map[string]interface{}{"source": "pile"},
		})
		// Effect-on-draw: the action card went straight to the discard pile.
		if last.Moved != engine.EmptyCard {
			s.fireEvent(GameEvent{
				Type:    EventPlayerDiscard,
				User:    user,
				Card:    cardFace(last.Moved),
				Payload: s.effectPayload(),
			})
		}

	case engine.ActDrawDiscard:
		s.fireEvent(GameEvent{
			Type:    EventPlayerDraw,
			User:    user,
			Card:    cardFace(last.Revealed),
			Payload: map[string]interface{}{"source": "discard", "discardSize": len(s.Engine.DiscardPile)},
		})
		s.fireEventToPlayer(actorID, GameEvent{
			Type:    EventPrivateDraw,
			Card:    cardFace(last.Revealed),
			Payload: map[string]interface{}{"source": "discard"},
		})

	case engine.ActKeep:
		s.fireEvent(GameEvent{Type: EventPlayerKeep, User: user, Card: cardFace(last.Moved), Card1: s.slotCard(a.Target)})
		payload["discarded"] = last.Moved.String()

	case engine.ActDiscard:
		s.fireEvent(GameEvent{Type: EventPlayerDiscard, User: user, Card: cardFace(last.Moved), Payload: s.effectPayload()})
		payload["discarded"] = last.Moved.String()

	case engine.ActKnock:
		s.fireEvent(GameEvent{Type: EventPlayerKnock, User: user, Card: cardFace(last.Moved)})
		payload["discarded"] = last.Moved.String()

	case engine.ActPeek:
		s.fireEvent(GameEvent{Type: EventPlayerPeek, User: user, Card1: s.slotCard(a.Target)})
		revealed := s.slotCard(a.Target)
		face := cardFace(last.Revealed)
		revealed.Label, revealed.Type, revealed.Value = face.Label, face.Type, face.Value
		s.fireEventToPlayer(actorID, GameEvent{Type: EventPrivatePeek, Card: revealed})

	case engine.ActSwap:
		s.fireEvent(GameEvent{Type: EventPlayerSwap, User: user, Card1: s.slotCard(a.Target), Card2: s.slotCard(a.Second)})

	case engine.ActPigeonSwap:
		s.fireEvent(GameEvent{Type: EventPlayerPigeonSwap, User: user, Card: cardFace(last.Moved), Card1: s.slotCard(a.Target)})
		payload["discarded"] = last.Moved.String()

	case engine.ActKingpinChooseEliminate, engine.ActKingpinChooseAdd:
		choice := "eliminate"
		if a.Kind == engine.ActKingpinChooseAdd {
			choice = "add"
		}
		s.fireEvent(GameEvent{Type: EventPlayerKingpinChoice, User: user, Payload: map[string]interface{}{"choice": choice}})

	case engine.ActKingpinEliminate:
		s.fireEvent(GameEvent{Type: EventPlayerKingpinEliminate, User: user, Card: cardFace(last.Moved), Card1: s.slotCard(a.Target)})
		payload["discarded"] = last.Moved.String()

	case engine.ActKingpinAdd:
		s.fireEvent(GameEvent{Type: EventPlayerKingpinAdd, User: user, Card1: s.slotCard(last.Added)})

	case engine.ActSkipEffect:
		s.fireEvent(GameEvent{Type: EventPlayerSkipEffect, User: user, Payload: map[string]interface{}{"phase": pre.phase.String()}})
	}

	if last.Reshuffle {
		s.fireEvent(GameEvent{Type: EventGameReshuffle, Payload: map[string]interface{}{"drawPileSize": len(s.Engine.DrawPile)}})
		payload["reshuffle"] = true
	}
	s.logAction(int(actor), a.Kind.String(), payload)
}

// effectPayload describes the effect step the actor is now in, if any.
func (s *Session) effectPayload() map[string]interface{} {
	if !s.Engine.Phase.IsEffect() {
		return nil
	}
	return map[string]interface{}{"effect": s.Engine.PendingEffect.String(), "phase": s.Engine.Phase.String()}
}

// FormatEvent renders one event as a human-readable line.
func FormatEvent(e GameEvent) string {
	who := "game"
	if e.User != nil {
		who = seatLabel(e.User)
	}
	prefix := fmt.Sprintf("[turn %d] ", e.Turn)

	switch e.Type {
	case EventPlayerDraw:
		if e.Card != nil {
			return prefix + fmt.Sprintf("%s takes %s from the discard pile", who, e.Card.Label)
		}
		return prefix + who + " draws from the draw pile"
	case EventPrivateDraw:
		return prefix + "you drew " + cardLabel(e.Card)
	case EventPlayerDiscard:
		line := prefix + fmt.Sprintf("%s discards %s", who, cardLabel(e.Card))
		if eff, ok := e.Payload["effect"]; ok {
			line += fmt.Sprintf(" (%v effect)", eff)
		}
		return line
	case EventPlayerKeep:
		return prefix + fmt.Sprintf("%s keeps the drawn card in %s, discarding %s", who, slotLabel(e.Card1), cardLabel(e.Card))
	case EventPlayerKnock:
		return prefix + fmt.Sprintf("%s knocks (discarding %s). Everyone else gets one more turn", who, cardLabel(e.Card))
	case EventPlayerPeek:
		return prefix + fmt.Sprintf("%s peeks at %s", who, slotLabel(e.Card1))
	case EventPrivatePeek:
		return prefix + fmt.Sprintf("you see %s in %s", cardLabel(e.Card), slotLabel(e.Card))
	case EventPlayerSwap:
		return prefix + fmt.Sprintf("%s swaps %s with %s", who, slotLabel(e.Card1), slotLabel(e.Card2))
	case EventPlayerPigeonSwap:
		return prefix + fmt.Sprintf("%s slips the Stool Pigeon into %s, discarding %s", who, slotLabel(e.Card1), cardLabel(e.Card))
	case EventPlayerKingpinChoice:
		return prefix + fmt.Sprintf("%s chooses Kingpin %v", who, e.Payload["choice"])
	case EventPlayerKingpinEliminate:
		return prefix + fmt.Sprintf("%s eliminates %s (%s)", who, slotLabel(e.Card1), cardLabel(e.Card))
	case EventPlayerKingpinAdd:
		return prefix + fmt.Sprintf("%s adds a card to %s", who, slotLabel(e.Card1))
	case EventPlayerSkipEffect:
		return prefix + fmt.Sprintf("%s skips %v", who, e.Payload["phase"])
	case EventGameReshuffle:
		return prefix + fmt.Sprintf("discard pile reshuffled into the draw pile (%v cards)", e.Payload["drawPileSize"])
	case EventGamePlayerTurn:
		return prefix + who + " to play"
	case EventGameEnd:
		return prefix + formatGameEnd(e)
	case EventPrivateActionFail:
		return prefix + fmt.Sprintf("rejected: %v", e.Payload["message"])
	case EventPrivateSyncState:
		return prefix + "state sync"
	}
	return prefix + string(e.Type)
}

func seatLabel(u *EventUser) string {
	if u.Name != "" {
		return u.Name
	}
	return fmt.Sprintf("P%d", u.Index)
}

func cardLabel(c *EventCard) string {
	if c == nil || c.Label == "" {
		return "a hidden card"
	}
	return c.Label
}

func slotLabel(c *EventCard) string {
	if c == nil || c.Idx == nil {
		return "?"
	}
	owner := "?"
	if c.User != nil {
		owner = seatLabel(c.User)
	}
	return fmt.Sprintf("%s#%d", owner, *c.Idx)
}

func formatGameEnd(e GameEvent) string {
	var b strings.Builder
	b.WriteString("round over.")
	seats, _ := e.Payload["seats"].([]string)
	scores, _ := e.Payload["scores"].([]int)
	for i := range scores {
		name := fmt.Sprintf("P%d", i)
		if i < len(seats) && seats[i] != "" {
			name = seats[i]
		}
		fmt.Fprintf(&b, " %s=%d", name, scores[i])
	}
	if e.User != nil {
		fmt.Fprintf(&b, " winner: %s", seatLabel(e.User))
	} else {
		b.WriteString(" tie for lowest score, no winner")
	}
	return b.String()
}
