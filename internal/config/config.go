package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/game"
)

// Config is a table definition loaded from an HCL file:
//
//	game {
//	  decks            = 6
//	  dealer_soft_17   = false
//	  blackjack_payout = 1.5
//	  reshuffle_below  = 15
//	}
//
//	player "mia" {
//	  strategy = "threshold"
//	  bankroll = 100
//	  bet      = 10
//	}
type Config struct {
	Game    *GameSettings  `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// GameSettings mirrors game.Rules in file form
type GameSettings struct {
	Decks           int     `hcl:"decks,optional"`
	DealerSoft17    bool    `hcl:"dealer_soft_17,optional"`
	BlackjackPayout float64 `hcl:"blackjack_payout,optional"`
	ReshuffleBelow  int     `hcl:"reshuffle_below,optional"`
}

// PlayerConfig defines one seat at the table
type PlayerConfig struct {
	Name     string  `hcl:"name,label"`
	Strategy string  `hcl:"strategy,optional"`
	Bankroll float64 `hcl:"bankroll,optional"`
	Bet      float64 `hcl:"bet,optional"`
}

// DefaultStrategy is assigned to players that do not name one.
const DefaultStrategy = "threshold"

// Default returns the engine defaults with no players configured
func Default() *Config {
	rules := game.DefaultRules()
	return &Config{
		Game: &GameSettings{
			Decks:           rules.Decks,
			DealerSoft17:    rules.DealerHitsSoft17,
			BlackjackPayout: rules.BlackjackPayout,
			ReshuffleBelow:  rules.ReshuffleBelow,
		},
	}
}

// Load reads configuration from an HCL file. A missing file is not an
// error; it yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	defaults := Default()

	if config.Game == nil {
		config.Game = defaults.Game
	} else {
		if config.Game.Decks == 0 {
			config.Game.Decks = defaults.Game.Decks
		}
		if config.Game.BlackjackPayout == 0 {
			config.Game.BlackjackPayout = defaults.Game.BlackjackPayout
		}
		if config.Game.ReshuffleBelow == 0 {
			config.Game.ReshuffleBelow = defaults.Game.ReshuffleBelow
		}
	}

	for i := range config.Players {
		if config.Players[i].Strategy == "" {
			config.Players[i].Strategy = DefaultStrategy
		}
		if config.Players[i].Bankroll == 0 {
			config.Players[i].Bankroll = game.DefaultBankroll
		}
		if config.Players[i].Bet == 0 {
			config.Players[i].Bet = game.DefaultBet
		}
	}

	return &config, nil
}

// Rules converts the game block into engine rules
func (c *Config) Rules() game.Rules {
	if c.Game == nil {
		return game.DefaultRules()
	}
	return game.Rules{
		Decks:            c.Game.Decks,
		DealerHitsSoft17: c.Game.DealerSoft17,
		BlackjackPayout:  c.Game.BlackjackPayout,
		ReshuffleBelow:   c.Game.ReshuffleBelow,
	}
}

// Validate validates the table configuration. Strategy names are only
// checked for presence; resolving them against the registry is the
// CLI's job.
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %s: defined twice", p.Name)
		}
		seen[p.Name] = true

		if p.Strategy == "" {
			return fmt.Errorf("player %s: strategy is required", p.Name)
		}
		if p.Bankroll <= 0 {
			return fmt.Errorf("player %s: bankroll must be positive", p.Name)
		}
		if p.Bet <= 0 {
			return fmt.Errorf("player %s: bet must be positive", p.Name)
		}
	}

	return nil
}

// Player returns the configuration for a named player, or nil if the
// file does not define one. The pointer aims into the Players slice so
// callers can adjust the entry in place.
func (c *Config) Player(name string) *PlayerConfig {
	for i := range c.Players {
		if c.Players[i].Name == name {
			return &c.Players[i]
		}
	}
	return nil
}
