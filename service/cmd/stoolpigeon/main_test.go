package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hcarminati/Stool-Pidgeon/service/internal/cache"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/config"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/database"
	"github.com/hcarminati/Stool-Pidgeon/service/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCommon() *common {
	cfg := config.Defaults()
	cfg.Seed = 42
	cfg.AgentSeed = 7
	return &common{cfg: cfg, log: logging.Discard()}
}

func TestPlayRoundKnockImmediately(t *testing.T) {
	c := testCommon()
	var out bytes.Buffer
	require.NoError(t, playRound(c, "tester", strings.NewReader("help\ndraw\nknock\n"), &out))

	text := out.String()
	assert.Contains(t, text, "Stool Pigeon, seed 42")
	assert.Contains(t, text, "draw | d")
	assert.Contains(t, text, "tester knocks")
	assert.Contains(t, text, "round over.")
	assert.Contains(t, text, "final scores:")
}

func TestPlayRoundRejectsThenQuits(t *testing.T) {
	c := testCommon()
	var out bytes.Buffer
	require.NoError(t, playRound(c, "tester", strings.NewReader("knock\ndance\nquit\n"), &out))

	text := out.String()
	assert.Contains(t, text, "rejected:")
	assert.Contains(t, text, "unknown verb")
	assert.NotContains(t, text, "final scores:")
}

func TestPlayRoundEndOfInput(t *testing.T) {
	c := testCommon()
	var out bytes.Buffer
	assert.NoError(t, playRound(c, "tester", strings.NewReader(""), &out))
}

func TestSimulateRecordsEveryRound(t *testing.T) {
	c := testCommon()
	c.cfg.SimGames = 25
	store := database.NewMemoryStore()
	actions := cache.NewMemoryActionLog()
	c.results = store
	c.actions = actions

	var out bytes.Buffer
	require.NoError(t, simulate(context.Background(), c, 0, &out))

	st, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, st.Games)
	assert.Contains(t, out.String(), "rounds: 25")

	recent, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	recs, err := actions.Actions(context.Background(), recent[0].GameID)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
}

func TestSimulateFourPlayersInMemory(t *testing.T) {
	c := testCommon()
	c.cfg.SimGames = 5
	c.cfg.HouseRules.NumPlayers = 4

	var out bytes.Buffer
	require.NoError(t, simulate(context.Background(), c, 0, &out))
	assert.Contains(t, out.String(), "rounds: 5")
}

func TestPrintStatsSortsSeats(t *testing.T) {
	var out bytes.Buffer
	printStats(&out, database.Stats{Games: 3, WinsBySeat: map[int]int{1: 2, 0: 1}})
	assert.Equal(t, "rounds: 3  ties: 0  knocker wins: 0  avg turns: 0.0\n  P0 wins: 1\n  P1 wins: 2\n", out.String())
}

func TestSimulateListsRecentRounds(t *testing.T) {
	c := testCommon()
	c.cfg.SimGames = 4
	store := database.NewMemoryStore()
	c.results = store

	var out bytes.Buffer
	require.NoError(t, simulate(context.Background(), c, 2, &out))

	text := out.String()
	require.Contains(t, text, "recent rounds:")
	listed := strings.Split(strings.TrimSpace(text[strings.Index(text, "recent rounds:"):]), "\n")
	assert.Len(t, listed, 3, "header plus two rounds")

	newest, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, listed[1], newest[0].GameID.String()[:8])
}
