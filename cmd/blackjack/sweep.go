package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

// SweepCmd runs the same simulation under many seeds in parallel and
// reports how final bankrolls spread across them.
type SweepCmd struct {
	Rounds         int      `kong:"default='1000',help='Number of rounds per seed'"`
	Seeds          int      `kong:"default='16',help='Number of distinct seeds to run'"`
	Seed           int64    `kong:"default='0',help='Base seed the per-run seeds derive from (0 draws from entropy)'"`
	Workers        int      `kong:"default='0',help='Parallel workers (0 picks one per CPU, capped)'"`
	Decks          *int     `kong:"help='Number of decks in the shoe (default 6)'"`
	DealerSoft17   *bool    `kong:"help='Dealer hits soft 17'"`
	Payout         *float64 `kong:"help='Blackjack payout multiplier (default 1.5)'"`
	ReshuffleBelow *int     `kong:"help='Reshuffle when the shoe drops below this many cards (default 15)'"`
	Player         []string `kong:"help='Player definition name:strategy[:bankroll][:bet], repeatable'"`
	Config         string   `kong:"help='HCL table configuration file',type='path'"`
	Output         string   `kong:"help='Write per-seed results to a JSON file',type='path'"`
	Verbose        bool     `kong:"short='v',help='Log the details of every round'"`
}

func (c *SweepCmd) Run() error {
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
	if hasInteractive(specs) {
		return errors.New("interactive players cannot join a sweep")
	}
	if c.Seeds < 1 {
		return fmt.Errorf("sweep needs at least one seed, got %d", c.Seeds)
	}

	base, err := resolveSeed(c.Seed)
	if err != nil {
		return err
	}

	// Derive one independent seed per run from the base
	master := randutil.New(base)
	seeds := make([]int64, c.Seeds)
	for i := range seeds {
		seeds[i] = master.Int64()
	}

	fmt.Println(titleStyle.Render(" blackjack sweep "))
	fmt.Printf("%d seeds x %d rounds, %d player(s), base seed %d\n\n",
		c.Seeds, c.Rounds, len(specs), base)

	report, err := simulator.Sweep(simulator.SweepConfig{
		Rules:  rules,
		Rounds: c.Rounds,
		Seeds:  seeds,
		NewPlayers: func() ([]*game.Player, error) {
			return buildPlayers(specs, rules)
		},
		Logger:  logger,
		Workers: c.Workers,
	})
	if err != nil {
		return err
	}

	printSweepReport(report, specs)

	if c.Output != "" {
		if err := writeSweepResults(c.Output, base, c.Rounds, specs, report); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}
		fmt.Println()
		fmt.Println(mutedStyle.Render(fmt.Sprintf("Per-seed results written to %s", c.Output)))
	}
	return nil
}

// sweepResults is the JSON document --output produces
type sweepResults struct {
	BaseSeed int64          `json:"base_seed"`
	Rounds   int            `json:"rounds"`
	Players  []playerResult `json:"players"`
	Runs     []runResult    `json:"runs"`
}

type playerResult struct {
	Name          string  `json:"name"`
	Strategy      string  `json:"strategy"`
	MeanBankroll  float64 `json:"mean_bankroll"`
	StdevBankroll float64 `json:"stdev_bankroll"`
}

type runResult struct {
	Seed           int64              `json:"seed"`
	RoundsPlayed   int                `json:"rounds_played"`
	FinalBankrolls map[string]float64 `json:"final_bankrolls"`
}

// writeSweepResults marshals the sweep report and writes it atomically so
// a watcher tailing the file never reads a partial document.
func writeSweepResults(path string, base int64, rounds int, specs []playerSpec, report *simulator.SweepReport) error {
	results := sweepResults{
		BaseSeed: base,
		Rounds:   rounds,
	}
	for _, spec := range specs {
		results.Players = append(results.Players, playerResult{
			Name:          spec.Name,
			Strategy:      spec.Strategy,
			MeanBankroll:  report.MeanFinalBankroll(spec.Name),
			StdevBankroll: report.StdDevFinalBankroll(spec.Name),
		})
	}
	for _, seed := range report.Seeds {
		results.Runs = append(results.Runs, runResult{
			Seed:           seed,
			RoundsPlayed:   report.Reports[seed].RoundsPlayed,
			FinalBankrolls: report.Reports[seed].FinalBankrolls,
		})
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
