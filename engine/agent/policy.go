// Package agent provides action policies that play the engine.
//
// A policy sees the round only through engine.PlayerView: the acting
// player's memory of the hands, the public piles and the legal actions. It
// never gets the live state, so policies can be swapped without touching the
// engine.
package agent

import (
	"errors"
	"math/rand/v2"

	"github.com/hcarminati/Stool-Pidgeon/engine"
)

// ErrNoLegalActions is returned when asked to act in a state with nothing to do.
var ErrNoLegalActions = errors.New("no legal actions")

// Policy picks the next action for the player the view belongs to.
type Policy interface {
	ChooseAction(v *engine.PlayerView) (engine.Action, error)
}

// PolicyFunc adapts an ordinary function to Policy.
type PolicyFunc func(v *engine.PlayerView) (engine.Action, error)

// ChooseAction calls f(v).
func (f PolicyFunc) ChooseAction(v *engine.PlayerView) (engine.Action, error) { return f(v) }

// Random picks uniformly among the legal actions. It is not safe for
// concurrent use.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random policy seeded for reproducible play.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))}
}

// ChooseAction returns one of v.Legal uniformly at random.
func (r *Random) ChooseAction(v *engine.PlayerView) (engine.Action, error) {
	legal := v.Legal
	if len(legal) == 0 {
		return engine.Action{}, ErrNoLegalActions
	}
	return legal[r.rng.IntN(len(legal))], nil
}

// First always takes the first legal action. Handy for deterministic tests.
var First = PolicyFunc(func(v *engine.PlayerView) (engine.Action, error) {
	legal := v.Legal
	if len(legal) == 0 {
		return engine.Action{}, ErrNoLegalActions
	}
	return legal[0], nil
})

// Play drives g to the end, asking policies[p] whenever player p acts.
// Each policy sees only its own player's view. It returns the number of
// actions applied.
func Play(g *engine.GameState, policies []Policy) (int, error) {
	steps := 0
	for !g.IsTerminal() {
		p := g.ActingPlayer()
		v := g.ViewFor(p)
		a, err := policies[p].ChooseAction(&v)
		if err != nil {
			return steps, err
		}
		if err := g.ApplyAction(a); err != nil {
			return steps, err
		}
		steps++
	}
	return steps, nil
}
