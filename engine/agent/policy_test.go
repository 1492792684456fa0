package agent

import (
	"errors"
	"testing"

	"github.com/hcarminati/Stool-Pidgeon/engine"
)

func newGame(t *testing.T, seed uint64) *engine.GameState {
	t.Helper()
	g, err := engine.NewGame(seed, engine.DefaultHouseRules())
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return &g
}

// TestRandomChoosesLegal verifies every choice is in LegalActions.
func TestRandomChoosesLegal(t *testing.T) {
	g := newGame(t, 3)
	r := NewRandom(9)
	for i := 0; i < 200 && !g.IsTerminal(); i++ {
		v := g.ViewFor(g.ActingPlayer())
		a, err := r.ChooseAction(&v)
		if err != nil {
			t.Fatalf("ChooseAction: %v", err)
		}
		if !g.IsLegal(a) {
			t.Fatalf("step %d: %s is not legal in %s", i, a, g.Phase)
		}
		if err := g.ApplyAction(a); err != nil {
			t.Fatalf("step %d: ApplyAction(%s): %v", i, a, err)
		}
	}
}

// TestRandomDeterministic verifies a seed reproduces the same round.
func TestRandomDeterministic(t *testing.T) {
	a, b := newGame(t, 21), newGame(t, 21)
	if _, err := Play(a, []Policy{NewRandom(1), NewRandom(2)}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := Play(b, []Policy{NewRandom(1), NewRandom(2)}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("same seeds produced different rounds")
	}
}

// TestRandomNoLegalActions verifies the error on a finished round.
func TestRandomNoLegalActions(t *testing.T) {
	g := newGame(t, 1)
	g.Phase = engine.PhaseGameOver
	v := g.ViewFor(0)
	if _, err := NewRandom(1).ChooseAction(&v); !errors.Is(err, ErrNoLegalActions) {
		t.Fatalf("want ErrNoLegalActions, got %v", err)
	}
	if _, err := First.ChooseAction(&v); !errors.Is(err, ErrNoLegalActions) {
		t.Fatalf("First: want ErrNoLegalActions, got %v", err)
	}
}

// TestPlayRandomVsRandom verifies random rounds always finish.
func TestPlayRandomVsRandom(t *testing.T) {
	for seed := uint64(1); seed <= 100; seed++ {
		g := newGame(t, seed)
		steps, err := Play(g, []Policy{NewRandom(seed), NewRandom(seed + 1000)})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if !g.IsTerminal() || steps == 0 {
			t.Fatalf("seed %d: round not finished after %d steps", seed, steps)
		}
	}
}

// TestPolicyFuncSwappable verifies any function can stand in as a policy.
func TestPolicyFuncSwappable(t *testing.T) {
	knocker := PolicyFunc(func(v *engine.PlayerView) (engine.Action, error) {
		if v.IsLegal(engine.Knock()) {
			return engine.Knock(), nil
		}
		return First.ChooseAction(v)
	})
	g := newGame(t, 4)
	if _, err := Play(g, []Policy{knocker, First}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.KnockedBy != 0 {
		t.Errorf("KnockedBy: want 0, got %d", g.KnockedBy)
	}
	if !g.IsTerminal() {
		t.Error("round should be over one turn after the knock")
	}
}

// TestPlayHidesUnseenCards verifies a policy never sees a card its player has
// not seen, and only ever acts on its own turn.
func TestPlayHidesUnseenCards(t *testing.T) {
	g := newGame(t, 11)
	inner := NewRandom(5)
	spy := PolicyFunc(func(v *engine.PlayerView) (engine.Action, error) {
		if v.Viewer != v.Acting {
			t.Fatalf("policy for %d asked to act for %d", v.Viewer, v.Acting)
		}
		for p, hand := range v.Hands {
			for i, c := range hand {
				if c == engine.UnknownCard || c == engine.EmptyCard {
					continue
				}
				ref := engine.SlotRef{Player: uint8(p), Slot: uint8(i)}
				if known, ok := g.Players[v.Viewer].Memory.Known(ref); !ok || known != c {
					t.Fatalf("turn %d: view shows %s at %s, which player %d does not remember", v.TurnNumber, c, ref, v.Viewer)
				}
			}
		}
		return inner.ChooseAction(v)
	})
	if _, err := Play(g, []Policy{spy, spy}); err != nil {
		t.Fatalf("Play: %v", err)
	}
}
