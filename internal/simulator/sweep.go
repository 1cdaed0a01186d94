package simulator

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/game"
	"golang.org/x/sync/errgroup"
)

// SweepConfig describes a batch of identical simulations run across
// distinct seeds. NewPlayers must return a fresh, independent player set
// on every call since the engine mutates bankrolls in place.
type SweepConfig struct {
	Rules      game.Rules
	Rounds     int
	Seeds      []int64
	NewPlayers func() ([]*game.Player, error)
	Logger     *log.Logger
	Clock      quartz.Clock
	Workers    int
}

// SweepReport holds per-seed run reports plus cross-seed aggregates
type SweepReport struct {
	Seeds   []int64
	Reports map[int64]*Report
}

// seedResult holds the outcome of one sweep worker
type seedResult struct {
	seed   int64
	report *Report
}

// Sweep runs one simulation per seed in parallel and collects the
// reports. Each seed gets its own engine and RNG so results are identical
// to running the seeds sequentially.
func Sweep(config SweepConfig) (*SweepReport, error) {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if len(config.Seeds) == 0 {
		return nil, fmt.Errorf("sweep requires at least one seed")
	}
	if config.NewPlayers == nil {
		return nil, fmt.Errorf("sweep requires a player factory")
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 8 {
			workers = 8 // Cap at 8 for diminishing returns
		}
	}

	config.Logger.Debug("Starting sweep",
		"seeds", len(config.Seeds),
		"rounds", config.Rounds,
		"workers", workers)

	// Use errgroup to manage workers
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	results := make(chan seedResult, len(config.Seeds))

	for _, seed := range config.Seeds {
		g.Go(func() error {
			players, err := config.NewPlayers()
			if err != nil {
				return fmt.Errorf("seed %d: building players: %w", seed, err)
			}

			sim := New(Config{
				Rules:   config.Rules,
				Players: players,
				Rounds:  config.Rounds,
				Seed:    seed,
				Logger:  config.Logger.With("seed", seed),
				Clock:   config.Clock,
			})
			report, err := sim.Run()
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}

			select {
			case results <- seedResult{seed: seed, report: report}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	sweep := &SweepReport{
		Seeds:   append([]int64(nil), config.Seeds...),
		Reports: make(map[int64]*Report, len(config.Seeds)),
	}
	for result := range results {
		sweep.Reports[result.seed] = result.report
	}
	sort.Slice(sweep.Seeds, func(i, j int) bool { return sweep.Seeds[i] < sweep.Seeds[j] })

	return sweep, nil
}

// FinalBankrolls returns the named player's final bankroll for every
// seed, in seed order.
func (r *SweepReport) FinalBankrolls(name string) []float64 {
	finals := make([]float64, 0, len(r.Seeds))
	for _, seed := range r.Seeds {
		finals = append(finals, r.Reports[seed].FinalBankrolls[name])
	}
	return finals
}

// MeanFinalBankroll returns the named player's mean final bankroll
// across seeds.
func (r *SweepReport) MeanFinalBankroll(name string) float64 {
	return mean(r.FinalBankrolls(name))
}

// StdDevFinalBankroll returns the sample standard deviation of the named
// player's final bankroll across seeds.
func (r *SweepReport) StdDevFinalBankroll(name string) float64 {
	finals := r.FinalBankrolls(name)
	if len(finals) < 2 {
		return 0
	}
	m := mean(finals)
	var sum float64
	for _, f := range finals {
		sum += (f - m) * (f - m)
	}
	return math.Sqrt(sum / float64(len(finals)-1))
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
