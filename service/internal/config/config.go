// Package config loads settings for the stoolpigeon service: built-in
// defaults, then an optional YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hcarminati/Stool-Pidgeon/engine"
	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// HouseRules is the file/env form of engine.HouseRules.
type HouseRules struct {
	NumPlayers           int    `yaml:"num_players" env:"STOOLPIGEON_NUM_PLAYERS"`
	CardsPerPlayer       int    `yaml:"cards_per_player" env:"STOOLPIGEON_CARDS_PER_PLAYER"`
	FaceDownSlots        int    `yaml:"face_down_slots" env:"STOOLPIGEON_FACE_DOWN_SLOTS"`
	Deck                 string `yaml:"deck" env:"STOOLPIGEON_DECK"` // canonical | prototype
	AllowDrawFromDiscard bool   `yaml:"allow_draw_from_discard" env:"STOOLPIGEON_ALLOW_DRAW_FROM_DISCARD"`
	EffectTrigger        string `yaml:"effect_trigger" env:"STOOLPIGEON_EFFECT_TRIGGER"` // discard | draw
	PigeonSwap           bool   `yaml:"pigeon_swap" env:"STOOLPIGEON_PIGEON_SWAP"`
	MaxTurns             int    `yaml:"max_turns" env:"STOOLPIGEON_MAX_TURNS"`
}

// Config holds all service settings.
type Config struct {
	LogLevel    string `yaml:"log_level" env:"STOOLPIGEON_LOG_LEVEL"`
	LogFormat   string `yaml:"log_format" env:"STOOLPIGEON_LOG_FORMAT"` // text | json | compact
	Seed        uint64 `yaml:"seed" env:"STOOLPIGEON_SEED"`             // 0 picks one from the clock
	AgentSeed   uint64 `yaml:"agent_seed" env:"STOOLPIGEON_AGENT_SEED"`
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	RedisURL    string `yaml:"redis_url" env:"REDIS_URL"`
	SimGames    int    `yaml:"sim_games" env:"STOOLPIGEON_SIM_GAMES"`

	HouseRules HouseRules `yaml:"house_rules"`
}

// Defaults returns the canonical settings.
func Defaults() *Config {
	r := engine.DefaultHouseRules()
	return &Config{
		LogLevel:  "info",
		LogFormat: "compact",
		SimGames:  100,
		HouseRules: HouseRules{
			NumPlayers:           int(r.NumPlayers),
			CardsPerPlayer:       int(r.CardsPerPlayer),
			FaceDownSlots:        int(r.FaceDownSlots),
			Deck:                 "canonical",
			AllowDrawFromDiscard: r.AllowDrawFromDiscard,
			EffectTrigger:        "discard",
			PigeonSwap:           r.PigeonSwap,
			MaxTurns:             int(r.MaxTurns),
		},
	}
}

// Load returns Defaults overlaid with the YAML file at path (skipped when
// path is empty) and then with any STOOLPIGEON_* / DATABASE_URL / REDIS_URL
// environment variables.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if _, err := cfg.EngineRules(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EngineRules maps the configured house rules onto the engine's, validating
// the result.
func (c *Config) EngineRules() (engine.HouseRules, error) {
	hr := c.HouseRules
	rules := engine.DefaultHouseRules()

	switch strings.ToLower(hr.Deck) {
	case "", "canonical":
		rules.Deck = engine.CanonicalDeck()
	case "prototype":
		rules.Deck = engine.PrototypeDeck()
	default:
		return rules, fmt.Errorf("unknown deck %q (want canonical or prototype)", hr.Deck)
	}
	switch strings.ToLower(hr.EffectTrigger) {
	case "", "discard":
		rules.EffectTrigger = engine.TriggerOnDiscard
	case "draw":
		rules.EffectTrigger = engine.TriggerOnDraw
	default:
		return rules, fmt.Errorf("unknown effect trigger %q (want discard or draw)", hr.EffectTrigger)
	}
	if hr.NumPlayers < 0 || hr.CardsPerPlayer < 0 || hr.FaceDownSlots < 0 || hr.MaxTurns < 0 {
		return rules, errors.New("house rules: counts must not be negative")
	}
	if hr.NumPlayers > 255 || hr.CardsPerPlayer > 255 || hr.FaceDownSlots > 255 || hr.MaxTurns > 65535 {
		return rules, errors.New("house rules: count out of range")
	}

	rules.NumPlayers = uint8(hr.NumPlayers)
	rules.CardsPerPlayer = uint8(hr.CardsPerPlayer)
	rules.FaceDownSlots = uint8(hr.FaceDownSlots)
	rules.AllowDrawFromDiscard = hr.AllowDrawFromDiscard
	rules.PigeonSwap = hr.PigeonSwap
	rules.MaxTurns = uint16(hr.MaxTurns)

	if err := rules.Validate(); err != nil {
		return rules, err
	}
	return rules, nil
}
