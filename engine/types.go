package engine

import (
	"fmt"
	"strconv"
)

// CardType is the closed set of card identities, packed into the upper 4 bits of Card.
type CardType uint8

const (
	TypeNumbered    CardType = 0
	TypeStoolPigeon CardType = 1
	TypeBamboozle   CardType = 2
	TypeVendetta    CardType = 3
	TypeKingpin     CardType = 4
	TypeRat         CardType = 5
	TypeMeatball    CardType = 6

	// TypeNone marks "no card type", e.g. no pending effect.
	TypeNone CardType = 0x0F
)

var cardTypeNames = [...]string{
	TypeNumbered:    "NUMBERED",
	TypeStoolPigeon: "STOOL_PIGEON",
	TypeBamboozle:   "BAMBOOZLE",
	TypeVendetta:    "VENDETTA",
	TypeKingpin:     "KINGPIN",
	TypeRat:         "RAT",
	TypeMeatball:    "MEATBALL",
}

func (t CardType) String() string {
	if int(t) < len(cardTypeNames) {
		return cardTypeNames[t]
	}
	return "NONE"
}

// IsAction reports whether discarding a drawn card of this type starts an effect.
func (t CardType) IsAction() bool {
	switch t {
	case TypeStoolPigeon, TypeBamboozle, TypeVendetta, TypeKingpin:
		return true
	}
	return false
}

// Card is a packed uint8: upper 4 bits = type, lower 4 bits = value.
// Only numbered cards carry a value.
type Card uint8

const (
	// EmptyCard is the tombstone of an eliminated slot and the "nothing drawn" marker.
	EmptyCard Card = 0xFF
	// UnknownCard appears only in Memory, for slots whose content is not known.
	UnknownCard Card = 0xFE
)

// NewCard constructs a Card from type and value. Non-numbered cards ignore value.
func NewCard(t CardType, value uint8) Card {
	if t != TypeNumbered {
		value = 0
	}
	return Card(uint8(t)<<4 | value&0x0F)
}

// Numbered is shorthand for NewCard(TypeNumbered, v).
func Numbered(v uint8) Card { return NewCard(TypeNumbered, v) }

// Type returns the card type bits (upper 4).
func (c Card) Type() CardType {
	if c == EmptyCard || c == UnknownCard {
		return TypeNone
	}
	return CardType(uint8(c) >> 4)
}

// Value returns the value bits (lower 4). Zero for non-numbered cards.
func (c Card) Value() uint8 {
	if c.Type() != TypeNumbered {
		return 0
	}
	return uint8(c) & 0x0F
}

// IsEmpty reports whether the card is the empty-slot tombstone.
func (c Card) IsEmpty() bool { return c == EmptyCard }

// IsAction reports whether the card is one of the four action cards.
func (c Card) IsAction() bool { return c.Type().IsAction() }

// ScoreValue returns the points the card contributes to a hand. ratRef is the
// value a RAT is worth at scoring time.
func (c Card) ScoreValue(ratRef int) int {
	switch c.Type() {
	case TypeNumbered:
		return int(c.Value())
	case TypeRat:
		return ratRef
	default:
		return 0
	}
}

func (c Card) String() string {
	switch c {
	case EmptyCard:
		return "--"
	case UnknownCard:
		return "??"
	}
	switch c.Type() {
	case TypeNumbered:
		return strconv.Itoa(int(c.Value()))
	case TypeStoolPigeon:
		return "PIGEON"
	default:
		return c.Type().String()
	}
}

// ---------------------------------------------------------------------------
// Phases
// ---------------------------------------------------------------------------

// Phase is the resting state of the round between two actions. RESOLVE_EFFECT
// is never a resting state: discarding an action card lands directly in the
// first sub-phase of its effect.
type Phase uint8

const (
	PhaseDraw             Phase = iota // 0
	PhaseDecide                        // 1
	PhaseStoolPigeonPeek               // 2
	PhaseStoolPigeonSwap               // 3
	PhaseBamboozleSelect               // 4
	PhaseVendettaPeek                  // 5
	PhaseVendettaSwap                  // 6
	PhaseKingpinChoose                 // 7
	PhaseKingpinEliminate              // 8
	PhaseKingpinAdd                    // 9
	PhaseFinalTurn                     // 10
	PhaseGameOver                      // 11
)

var phaseNames = [...]string{
	PhaseDraw:             "DRAW",
	PhaseDecide:           "DECIDE",
	PhaseStoolPigeonPeek:  "STOOL_PIGEON_PEEK",
	PhaseStoolPigeonSwap:  "STOOL_PIGEON_SWAP",
	PhaseBamboozleSelect:  "BAMBOOZLE_SELECT",
	PhaseVendettaPeek:     "VENDETTA_PEEK",
	PhaseVendettaSwap:     "VENDETTA_SWAP",
	PhaseKingpinChoose:    "KINGPIN_CHOOSE",
	PhaseKingpinEliminate: "KINGPIN_ELIMINATE",
	PhaseKingpinAdd:       "KINGPIN_ADD",
	PhaseFinalTurn:        "FINAL_TURN",
	PhaseGameOver:         "GAME_OVER",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Phase(" + strconv.Itoa(int(p)) + ")"
}

// IsEffect reports whether the phase is one of the special-effect sub-phases.
func (p Phase) IsEffect() bool {
	return p >= PhaseStoolPigeonPeek && p <= PhaseKingpinAdd
}

// DrawSource records which pile the in-flight card came from.
type DrawSource uint8

const (
	DrawnFromNone    DrawSource = 0
	DrawnFromPile    DrawSource = 1
	DrawnFromDiscard DrawSource = 2
)

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

// SlotRef addresses one hand slot. Slot indices are stable for the whole round.
type SlotRef struct {
	Player uint8
	Slot   uint8
}

func (r SlotRef) String() string { return fmt.Sprintf("%d:%d", r.Player, r.Slot) }

func (r SlotRef) less(o SlotRef) bool {
	if r.Player != o.Player {
		return r.Player < o.Player
	}
	return r.Slot < o.Slot
}

// ActionKind tags the Action union.
type ActionKind uint8

const (
	ActDrawPile               ActionKind = iota // 0
	ActDrawDiscard                              // 1
	ActKeep                                     // 2: swap drawn card into Target
	ActDiscard                                  // 3
	ActKnock                                    // 4
	ActPeek                                     // 5: Target
	ActSwap                                     // 6: Target <-> Second
	ActPigeonSwap                               // 7: discard-top pigeon into Target
	ActKingpinChooseEliminate                   // 8
	ActKingpinChooseAdd                         // 9
	ActKingpinEliminate                         // 10: Target
	ActKingpinAdd                               // 11: Target.Player receives the card
	ActSkipEffect                               // 12

	numActionKinds = 13
)

var actionKindNames = [...]string{
	ActDrawPile:               "draw-pile",
	ActDrawDiscard:            "draw-discard",
	ActKeep:                   "keep",
	ActDiscard:                "discard",
	ActKnock:                  "knock",
	ActPeek:                   "peek",
	ActSwap:                   "swap",
	ActPigeonSwap:             "pigeon-swap",
	ActKingpinChooseEliminate: "kingpin-eliminate",
	ActKingpinChooseAdd:       "kingpin-add",
	ActKingpinEliminate:       "eliminate",
	ActKingpinAdd:             "add",
	ActSkipEffect:             "skip",
}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return "ActionKind(" + strconv.Itoa(int(k)) + ")"
}

// Action is a tagged union: Kind selects which payload fields are meaningful.
// Actions are comparable, so legality checks are plain equality against
// LegalActions.
type Action struct {
	Kind   ActionKind
	Target SlotRef
	Second SlotRef
}

func DrawPile() Action               { return Action{Kind: ActDrawPile} }
func DrawDiscard() Action            { return Action{Kind: ActDrawDiscard} }
func Discard() Action                { return Action{Kind: ActDiscard} }
func Knock() Action                  { return Action{Kind: ActKnock} }
func SkipEffect() Action             { return Action{Kind: ActSkipEffect} }
func KingpinChooseEliminate() Action { return Action{Kind: ActKingpinChooseEliminate} }
func KingpinChooseAdd() Action       { return Action{Kind: ActKingpinChooseAdd} }

// Keep swaps the drawn card into the player's own slot.
func Keep(player, slot uint8) Action {
	return Action{Kind: ActKeep, Target: SlotRef{player, slot}}
}

// Peek reveals one slot to the acting player.
func Peek(ref SlotRef) Action { return Action{Kind: ActPeek, Target: ref} }

// Swap exchanges two slots in any hands. The pair is normalized so that
// Swap(a, b) == Swap(b, a).
func Swap(a, b SlotRef) Action {
	if b.less(a) {
		a, b = b, a
	}
	return Action{Kind: ActSwap, Target: a, Second: b}
}

// PigeonSwap moves the discarded Stool Pigeon into the actor's slot.
func PigeonSwap(player, slot uint8) Action {
	return Action{Kind: ActPigeonSwap, Target: SlotRef{player, slot}}
}

// KingpinEliminate discards the card in the actor's own slot, leaving it empty.
func KingpinEliminate(player, slot uint8) Action {
	return Action{Kind: ActKingpinEliminate, Target: SlotRef{player, slot}}
}

// KingpinAdd appends the draw-pile top to the target player's hand.
func KingpinAdd(target uint8) Action {
	return Action{Kind: ActKingpinAdd, Target: SlotRef{Player: target}}
}

// normalize canonicalizes payload fields that the kind does not use so that
// equality against LegalActions ignores them.
func (a Action) normalize() Action {
	switch a.Kind {
	case ActKeep, ActPeek, ActPigeonSwap, ActKingpinEliminate:
		return Action{Kind: a.Kind, Target: a.Target}
	case ActSwap:
		return Swap(a.Target, a.Second)
	case ActKingpinAdd:
		return KingpinAdd(a.Target.Player)
	default:
		return Action{Kind: a.Kind}
	}
}

// slotRefs returns the hand slots the action addresses.
func (a Action) slotRefs() []SlotRef {
	switch a.Kind {
	case ActKeep, ActPeek, ActPigeonSwap, ActKingpinEliminate:
		return []SlotRef{a.Target}
	case ActSwap:
		return []SlotRef{a.Target, a.Second}
	}
	return nil
}

func (a Action) String() string {
	switch a.Kind {
	case ActKeep, ActPeek, ActPigeonSwap, ActKingpinEliminate:
		return a.Kind.String() + " " + a.Target.String()
	case ActSwap:
		return a.Kind.String() + " " + a.Target.String() + " " + a.Second.String()
	case ActKingpinAdd:
		return a.Kind.String() + " " + strconv.Itoa(int(a.Target.Player))
	}
	return a.Kind.String()
}

// ---------------------------------------------------------------------------
// Last action info
// ---------------------------------------------------------------------------

// LastActionInfo describes the most recently applied action, for event
// emission by the session layer. Revealed is only meaningful to Actor.
type LastActionInfo struct {
	Action    Action
	Actor     uint8
	Revealed  Card    // peeked card, or the card drawn
	Moved     Card    // card that went to the discard pile, EmptyCard if none
	Added     SlotRef // slot created by a Kingpin add
	Reshuffle bool
}
