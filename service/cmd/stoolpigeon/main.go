// Command stoolpigeon plays Stool Pigeon in the terminal against random
// agents, or runs agent-vs-agent batches and records the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hcarminati/Stool-Pidgeon/engine/agent"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/cache"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/config"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/database"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/logging"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/models"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(os.Args[2:])
	case "sim":
		err = runSim(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  stoolpigeon play [--config FILE] [--seed N] [--players N]")
	fmt.Println("  stoolpigeon sim  [--config FILE] [--seed N] [--players N] [--games N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a round in the terminal against random agents")
	fmt.Println("  sim     Run agent-vs-agent rounds and report results")
}

// common holds what both subcommands share.
type common struct {
	cfg     *config.Config
	log     *logrus.Logger
	actions cache.ActionLog
	results database.ResultStore
	closers []func()
}

// commonFlags registers the shared flags on fs and returns a loader to call
// after fs.Parse.
func commonFlags(fs *flag.FlagSet) func() (*common, error) {
	cfgPath := fs.String("config", "", "path to a YAML config file")
	seed := fs.Uint64("seed", 0, "deal seed (0: from config, else the clock)")
	players := fs.Int("players", 0, "number of players, 2-4 (0: from config)")

	return func() (*common, error) {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return nil, err
		}
		if *seed != 0 {
			cfg.Seed = *seed
		}
		if cfg.Seed == 0 {
			cfg.Seed = uint64(time.Now().UnixNano())
		}
		if cfg.AgentSeed == 0 {
			cfg.AgentSeed = cfg.Seed
		}
		if *players != 0 {
			cfg.HouseRules.NumPlayers = *players
		}
		if _, err := cfg.EngineRules(); err != nil {
			return nil, err
		}

		log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return nil, err
		}
		c := &common{cfg: cfg, log: log}
		if err := c.openStores(); err != nil {
			c.close()
			return nil, err
		}
		return c, nil
	}
}

// openStores connects the optional Redis action log and Postgres result store.
func (c *common) openStores() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entry := c.log.WithField(logging.TagKey, "storage")

	rl, err := cache.NewRedisActionLog(ctx, c.cfg.RedisURL)
	if err != nil {
		return err
	}
	if rl != nil {
		c.actions = rl
		c.closers = append(c.closers, func() { _ = rl.Close() })
		entry.Info("Action log: redis.")
	}

	pg, err := database.NewPostgresStore(ctx, c.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if pg != nil {
		c.results = pg
		c.closers = append(c.closers, pg.Close)
		entry.Info("Result store: postgres.")
	}
	return nil
}

func (c *common) close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

// agentSeats builds n agent seats with seeded random policies.
func agentSeats(n int, seed uint64, names func(i int) string) ([]*models.Seat, map[uuid.UUID]agent.Policy) {
	seats := make([]*models.Seat, n)
	policies := make(map[uuid.UUID]agent.Policy, n)
	for i := range seats {
		seats[i] = models.NewSeat(names(i), models.SeatAgent)
		policies[seats[i].ID] = agent.NewRandom(seed + uint64(i))
	}
	return seats, policies
}
