package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hcarminati/Stool-Pidgeon/service/internal/database"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/game"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/logging"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/models"
	"github.com/sirupsen/logrus"
)

func runSim(args []string) error {
	fs := flag.NewFlagSet("sim", flag.ExitOnError)
	load := commonFlags(fs)
	games := fs.Int("games", 0, "rounds to play (0: sim_games from config)")
	recent := fs.Int("recent", 0, "list the most recent N stored rounds after the summary")
	fs.Parse(args)

	c, err := load()
	if err != nil {
		return err
	}
	defer c.close()
	if *games > 0 {
		c.cfg.SimGames = *games
	}
	return simulate(context.Background(), c, *recent, os.Stdout)
}

// simulate plays cfg.SimGames agent-only rounds with consecutive seeds and
// prints a summary followed by the last recent stored rounds. Results go to
// the configured store, or to memory.
func simulate(ctx context.Context, c *common, recent int, out io.Writer) error {
	rules, err := c.cfg.EngineRules()
	if err != nil {
		return err
	}
	n := int(rules.NumPlayers)
	if n == 0 {
		n = 2
	}
	store := c.results
	if store == nil {
		store = database.NewMemoryStore()
	}
	entry := c.log.WithField(logging.TagKey, "sim")

	for i := 0; i < c.cfg.SimGames; i++ {
		seed := c.cfg.Seed + uint64(i)
		seats, policies := agentSeats(n, c.cfg.AgentSeed+uint64(i)*uint64(n), func(i int) string { return fmt.Sprintf("P%d", i) })
		s, err := game.NewSession(game.Options{
			Rules:    rules,
			Seats:    seats,
			Policies: policies,
			Logger:   c.log,
			Actions:  c.actions,
			Results:  store,
		})
		if err != nil {
			return err
		}
		if err := s.Start(seed); err != nil {
			s.Close()
			return err
		}
		steps, err := s.RunAgents(ctx)
		s.Close()
		if err != nil {
			return fmt.Errorf("round %d (seed %d): %w", i, seed, err)
		}
		entry.WithFields(logrus.Fields{
			"round":  i,
			"seed":   seed,
			"steps":  steps,
			"winner": s.Result.WinnerIndex,
			"scores": s.Result.Scores,
		}).Debug("Round finished.")
	}

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}
	printStats(out, st)
	if recent <= 0 {
		return nil
	}
	rounds, err := store.Recent(ctx, recent)
	if err != nil {
		return err
	}
	printRecent(out, rounds)
	return nil
}

func printStats(out io.Writer, st database.Stats) {
	fmt.Fprintf(out, "rounds: %d  ties: %d  knocker wins: %d  avg turns: %.1f\n", st.Games, st.Ties, st.KnockerWins, st.AvgTurns)
	seats := make([]int, 0, len(st.WinsBySeat))
	for seat := range st.WinsBySeat {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	for _, seat := range seats {
		fmt.Fprintf(out, "  P%d wins: %d\n", seat, st.WinsBySeat[seat])
	}
}

func printRecent(out io.Writer, rounds []models.GameResult) {
	fmt.Fprintln(out, "recent rounds:")
	for _, r := range rounds {
		winner := "tie"
		if !r.Tied() {
			winner = fmt.Sprintf("P%d", r.WinnerIndex)
		}
		fmt.Fprintf(out, "  %s  winner %s  scores %v  turns %d\n", r.GameID.String()[:8], winner, r.Scores, r.Turns)
	}
}
