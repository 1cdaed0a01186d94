package main

import (
	"fmt"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays many rounds between configured players and reports
// per-player statistics.
type SimulateCmd struct {
	Rounds         int      `kong:"default='1000',help='Number of rounds to play'"`
	Decks          *int     `kong:"help='Number of decks in the shoe (default 6)'"`
	DealerSoft17   *bool    `kong:"help='Dealer hits soft 17'"`
	Payout         *float64 `kong:"help='Blackjack payout multiplier (default 1.5)'"`
	ReshuffleBelow *int     `kong:"help='Reshuffle when the shoe drops below this many cards (default 15)'"`
	Seed           int64    `kong:"default='0',help='RNG seed (0 draws one from entropy)'"`
	Player         []string `kong:"help='Player definition name:strategy[:bankroll][:bet], repeatable'"`
	Config         string   `kong:"help='HCL table configuration file',type='path'"`
	Verbose        bool     `kong:"short='v',help='Log the details of every round'"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Verbose)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rules := buildRules(cfg, c.Decks, c.DealerSoft17, c.Payout, c.ReshuffleBelow)
	if err := rules.Validate(); err != nil {
		return err
	}

	specs, err := tablePlayers(cfg, c.Player)
	if err != nil {
		return err
	}
	players, err := buildPlayers(specs, rules)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(c.Seed)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" blackjack simulate "))
	fmt.Printf("%d rounds, %d player(s), seed %d\n\n", c.Rounds, len(players), seed)

	sim := simulator.New(simulator.Config{
		Rules:   rules,
		Players: players,
		Rounds:  c.Rounds,
		Seed:    seed,
		Logger:  logger,
	})
	report, err := sim.Run()
	if err != nil {
		return err
	}

	printReport(report, specs)
	return nil
}
