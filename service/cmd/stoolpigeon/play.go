package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/hcarminati/Stool-Pidgeon/engine"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/game"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/models"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	load := commonFlags(fs)
	name := fs.String("name", "you", "your display name")
	fs.Parse(args)

	c, err := load()
	if err != nil {
		return err
	}
	defer c.close()
	return playRound(c, *name, os.Stdin, os.Stdout)
}

// playRound seats one human at index 0 and random agents in the remaining
// chairs, then reads commands from in until the round ends.
func playRound(c *common, name string, in io.Reader, out io.Writer) error {
	rules, err := c.cfg.EngineRules()
	if err != nil {
		return err
	}
	n := int(rules.NumPlayers)
	if n == 0 {
		n = 2
	}
	agents, policies := agentSeats(n-1, c.cfg.AgentSeed, func(i int) string { return fmt.Sprintf("agent%d", i+1) })
	human := models.NewSeat(name, models.SeatHuman)
	seats := append([]*models.Seat{human}, agents...)

	s, err := game.NewSession(game.Options{
		Rules:    rules,
		Seats:    seats,
		Policies: policies,
		Logger:   c.log,
		Actions:  c.actions,
		Results:  c.results,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	s.BroadcastFn = func(ev game.GameEvent) {
		if ev.Type == game.EventGamePlayerTurn {
			return
		}
		fmt.Fprintln(out, game.FormatEvent(ev))
	}
	s.BroadcastToPlayerFn = func(seatID uuid.UUID, ev game.GameEvent) {
		if seatID != human.ID || ev.Type == game.EventPrivateSyncState {
			return
		}
		fmt.Fprintln(out, game.FormatEvent(ev))
	}

	if err := s.Start(c.cfg.Seed); err != nil {
		return err
	}
	fmt.Fprintf(out, "Stool Pigeon, seed %d. Lowest hand wins. Type 'help' for commands.\n", c.cfg.Seed)

	ctx := context.Background()
	if _, err := s.RunAgents(ctx); err != nil {
		return err
	}

	var sel game.Selection
	scanner := bufio.NewScanner(in)
	for !s.GameOver {
		view, err := s.View(human.ID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		game.RenderView(out, view)
		if ref, ok := sel.Pending(); ok {
			fmt.Fprintf(out, "(picked %s, pick another slot to swap)\n", ref)
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		var action engine.Action
		switch verb, rest, _ := strings.Cut(line, " "); verb {
		case "":
			continue
		case "help", "?":
			fmt.Fprintln(out, game.CommandHelp)
			fmt.Fprintln(out, "pick P:S            select a slot; a second pick swaps the two")
			fmt.Fprintln(out, "cancel              clear a pick")
			fmt.Fprintln(out, "quit                leave the game")
			continue
		case "quit", "exit":
			return nil
		case "cancel":
			sel.Reset()
			continue
		case "pick":
			ref, err := game.ParseSlotRef(strings.TrimSpace(rest), human.Index)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			a, done := sel.Click(ref)
			if !done {
				continue
			}
			action = a
		default:
			a, err := game.ParseCommand(line, human.Index)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			action = a
		}

		// Rejections are reported through the private_action_fail event.
		if err := s.Submit(human.ID, action); err != nil {
			continue
		}
		sel.Reset()
		if _, err := s.RunAgents(ctx); err != nil {
			return err
		}
	}

	view, err := s.View(human.ID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	game.RenderView(out, view)
	return nil
}
