package engine

// Full-round property tests driven by uniformly random legal actions. They use
// only the public API: NewGame, LegalActions, ApplyAction, IsTerminal, Scores,
// Winner and TotalCards.

import (
	"math/rand/v2"
	"testing"
)

// maxSteps bounds a single random round; a healthy round ends far sooner.
const maxSteps = 20000

// playRandomRound plays a round to the end with random legal actions,
// checking conservation and progress on every step.
func playRandomRound(t *testing.T, seed uint64, rules HouseRules) *GameState {
	t.Helper()
	g, err := NewGame(seed, rules)
	if err != nil {
		t.Fatalf("seed %d: NewGame: %v", seed, err)
	}
	rng := rand.New(rand.NewPCG(seed, 0xda3e39cb94b95bdb))
	deckSize := rules.Deck.Size()

	for step := 0; !g.IsTerminal(); step++ {
		if step >= maxSteps {
			t.Fatalf("seed %d: round did not end after %d steps (phase %s)", seed, maxSteps, g.Phase)
		}
		legal := g.LegalActions()
		if len(legal) == 0 {
			t.Fatalf("seed %d step %d: no legal actions in %s", seed, step, g.Phase)
		}
		a := legal[rng.IntN(len(legal))]
		if err := g.ApplyAction(a); err != nil {
			t.Fatalf("seed %d step %d: legal action %s rejected: %v", seed, step, a, err)
		}
		if got := g.TotalCards(); got != deckSize {
			t.Fatalf("seed %d step %d after %s: TotalCards want %d, got %d", seed, step, a, deckSize, got)
		}
		if g.Phase == PhaseDecide || g.Phase == PhaseFinalTurn {
			if g.DrawnCard == EmptyCard {
				t.Fatalf("seed %d step %d: %s without a drawn card", seed, step, g.Phase)
			}
		} else if g.DrawnCard != EmptyCard {
			t.Fatalf("seed %d step %d: drawn card %s held in %s", seed, step, g.DrawnCard, g.Phase)
		}
	}
	return &g
}

// TestRandomRoundsTerminate plays many two-player rounds to completion.
func TestRandomRoundsTerminate(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		g := playRandomRound(t, seed, DefaultHouseRules())
		scores := g.Scores()
		w, ok := g.Winner()
		if ok && scores[w] >= scores[1-w] {
			t.Errorf("seed %d: winner %d does not have the lowest score %v", seed, w, scores)
		}
		if !ok && scores[0] != scores[1] {
			t.Errorf("seed %d: no winner but scores differ %v", seed, scores)
		}
	}
}

// TestRandomRoundsVariants covers larger tables and the rule variants.
func TestRandomRoundsVariants(t *testing.T) {
	variants := map[string]func(r *HouseRules){
		"three players":   func(r *HouseRules) { r.NumPlayers = 3 },
		"four players":    func(r *HouseRules) { r.NumPlayers = 4 },
		"trigger on draw": func(r *HouseRules) { r.EffectTrigger = TriggerOnDraw },
		"pigeon swap":     func(r *HouseRules) { r.PigeonSwap = true },
		"prototype deck":  func(r *HouseRules) { r.Deck = PrototypeDeck() },
		"no discard draw": func(r *HouseRules) { r.AllowDrawFromDiscard = false },
		"turn cap":        func(r *HouseRules) { r.MaxTurns = 10 },
	}
	for name, mutate := range variants {
		t.Run(name, func(t *testing.T) {
			rules := DefaultHouseRules()
			mutate(&rules)
			for seed := uint64(1); seed <= 40; seed++ {
				playRandomRound(t, seed, rules)
			}
		})
	}
}

// TestKnockedRoundEndsOnSchedule verifies the N-1 final turns under random play.
func TestKnockedRoundEndsOnSchedule(t *testing.T) {
	for _, n := range []uint8{2, 3, 4} {
		rules := DefaultHouseRules()
		rules.NumPlayers = n
		for seed := uint64(1); seed <= 30; seed++ {
			g, _ := NewGame(seed, rules)
			rng := rand.New(rand.NewPCG(seed, 7))
			turnsAfterKnock := -1
			for !g.IsTerminal() {
				legal := g.LegalActions()
				a := legal[rng.IntN(len(legal))]
				if containsAction(legal, Knock()) && turnsAfterKnock < 0 && g.TurnNumber >= 3 {
					a = Knock()
				}
				turn := g.TurnNumber
				if err := g.ApplyAction(a); err != nil {
					t.Fatalf("n=%d seed %d: %v", n, seed, err)
				}
				if a == Knock() {
					turnsAfterKnock = 0
				} else if turnsAfterKnock >= 0 && g.TurnNumber != turn {
					turnsAfterKnock++
				}
			}
			if turnsAfterKnock > int(n)-1 {
				t.Errorf("n=%d seed %d: %d turns after knock, at most %d allowed", n, seed, turnsAfterKnock, n-1)
			}
			if g.IsKnocked() && g.TurnsSinceKnock >= n-1 && turnsAfterKnock != int(n)-1 {
				t.Errorf("n=%d seed %d: want %d turns after knock, got %d", n, seed, n-1, turnsAfterKnock)
			}
		}
	}
}
