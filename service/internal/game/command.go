package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hcarminati/Stool-Pidgeon/engine"
)

// ErrBadCommand is returned by ParseCommand for text it cannot turn into an
// action.
var ErrBadCommand = errors.New("bad command")

// CommandHelp describes the text gestures understood by ParseCommand.
const CommandHelp = `draw | d            draw from the draw pile
take | t            take the top of the discard pile
keep N | k N        swap the drawn card into your slot N
discard | x         discard the drawn card (action cards trigger)
knock               discard the drawn card and knock
peek P:S | peek N   look at player P's slot S (or your own slot N)
swap P:S P:S        swap two slots
pigeon N            move the Stool Pigeon into your slot N
eliminate | add     Kingpin choice
kill N              Kingpin: discard your slot N
give P              Kingpin: give player P a card
skip                skip the current effect step`

// ParseCommand turns one line of text typed by the player at engine index
// seat into an action. Legality is left to the engine.
func ParseCommand(text string, seat uint8) (engine.Action, error) {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return engine.Action{}, fmt.Errorf("%w: empty input", ErrBadCommand)
	}
	verb, args := fields[0], fields[1:]

	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%w: %s takes %d argument(s)", ErrBadCommand, verb, n)
		}
		return nil
	}

	switch verb {
	case "draw", "d":
		return engine.DrawPile(), want(0)
	case "take", "t":
		return engine.DrawDiscard(), want(0)
	case "discard", "x":
		return engine.Discard(), want(0)
	case "knock":
		return engine.Knock(), want(0)
	case "eliminate":
		return engine.KingpinChooseEliminate(), want(0)
	case "add":
		return engine.KingpinChooseAdd(), want(0)
	case "skip":
		return engine.SkipEffect(), want(0)

	case "keep", "k", "pigeon", "kill":
		if err := want(1); err != nil {
			return engine.Action{}, err
		}
		slot, err := parseIndex(args[0])
		if err != nil {
			return engine.Action{}, err
		}
		switch verb {
		case "pigeon":
			return engine.PigeonSwap(seat, slot), nil
		case "kill":
			return engine.KingpinEliminate(seat, slot), nil
		}
		return engine.Keep(seat, slot), nil

	case "peek":
		if err := want(1); err != nil {
			return engine.Action{}, err
		}
		ref, err := ParseSlotRef(args[0], seat)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Peek(ref), nil

	case "swap":
		if err := want(2); err != nil {
			return engine.Action{}, err
		}
		a, err := ParseSlotRef(args[0], seat)
		if err != nil {
			return engine.Action{}, err
		}
		b, err := ParseSlotRef(args[1], seat)
		if err != nil {
			return engine.Action{}, err
		}
		return engine.Swap(a, b), nil

	case "give":
		if err := want(1); err != nil {
			return engine.Action{}, err
		}
		p, err := parseIndex(args[0])
		if err != nil {
			return engine.Action{}, err
		}
		return engine.KingpinAdd(p), nil
	}
	return engine.Action{}, fmt.Errorf("%w: unknown verb %q", ErrBadCommand, verb)
}

// ParseSlotRef reads "P:S", or a bare "S" meaning the speaker's own slot.
func ParseSlotRef(s string, seat uint8) (engine.SlotRef, error) {
	player, slot, found := strings.Cut(s, ":")
	if !found {
		i, err := parseIndex(s)
		return engine.SlotRef{Player: seat, Slot: i}, err
	}
	p, err := parseIndex(player)
	if err != nil {
		return engine.SlotRef{}, err
	}
	i, err := parseIndex(slot)
	if err != nil {
		return engine.SlotRef{}, err
	}
	return engine.SlotRef{Player: p, Slot: i}, nil
}

func parseIndex(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an index", ErrBadCommand, s)
	}
	return uint8(n), nil
}
