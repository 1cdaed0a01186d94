package simulator

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func testPlayers(t *testing.T) []*game.Player {
	t.Helper()

	p1, err := game.NewPlayer("mia", strategy.NewThreshold(16))
	require.NoError(t, err)
	p2, err := game.NewPlayer("noah", strategy.NewMirror(false))
	require.NoError(t, err)
	return []*game.Player{p1, p2}
}

// failingStrategy breaks every round it is asked to decide in
type failingStrategy struct{ game.BaseStrategy }

func (failingStrategy) Name() string { return "failing" }

func (failingStrategy) Decide(game.RoundSnapshot) (game.Action, error) {
	return 0, errors.New("no decision")
}

func TestNew(t *testing.T) {
	sim := New(Config{Rules: game.DefaultRules(), Rounds: 100, Seed: 12345})

	require.NotNil(t, sim)
	assert.Equal(t, 100, sim.config.Rounds)
	assert.Equal(t, int64(12345), sim.config.Seed)
	assert.NotNil(t, sim.config.Logger, "nil logger should be defaulted")
	assert.NotNil(t, sim.config.Clock, "nil clock should be defaulted")
}

func TestSimulator_Run(t *testing.T) {
	mockClock := quartz.NewMock(t)
	players := testPlayers(t)

	// Eight rounds cannot eliminate anyone on the default bankroll, so
	// every round is played.
	sim := New(Config{
		Rules:   game.DefaultRules(),
		Players: players,
		Rounds:  8,
		Seed:    12345,
		Logger:  testLogger(),
		Clock:   mockClock,
	})

	report, err := sim.Run()
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 8, report.RoundsPlayed)
	assert.Equal(t, time.Duration(0), report.Elapsed, "mock clock never advances")

	require.Contains(t, report.FinalBankrolls, "mia")
	require.Contains(t, report.FinalBankrolls, "noah")
	assert.Equal(t, players[0].Bankroll, report.FinalBankrolls["mia"])
	assert.Equal(t, players[1].Bankroll, report.FinalBankrolls["noah"])

	require.Contains(t, report.Stats, "mia")
	assert.Equal(t, 8, report.Stats["mia"].Rounds)
	assert.Equal(t, 8, report.Stats["noah"].Rounds)
}

func TestSimulator_Run_Deterministic(t *testing.T) {
	run := func(seed int64) *Report {
		sim := New(Config{
			Rules:   game.DefaultRules(),
			Players: testPlayers(t),
			Rounds:  30,
			Seed:    seed,
			Logger:  testLogger(),
			Clock:   quartz.NewMock(t),
		})
		report, err := sim.Run()
		require.NoError(t, err)
		return report
	}

	first := run(1234)
	second := run(1234)

	assert.Equal(t, first.RoundsPlayed, second.RoundsPlayed)
	assert.Equal(t, first.FinalBankrolls, second.FinalBankrolls)
	assert.Equal(t, first.Stats["mia"].Units, second.Stats["mia"].Units)

	third := run(99)
	assert.NotEqual(t, first.Stats["mia"].Units, third.Stats["mia"].Units,
		"different seeds should deal different rounds")
}

func TestSimulator_Run_LedgerInvariants(t *testing.T) {
	players := testPlayers(t)
	sim := New(Config{
		Rules:   game.DefaultRules(),
		Players: players,
		Rounds:  30,
		Seed:    7,
		Logger:  testLogger(),
		Clock:   quartz.NewMock(t),
	})

	report, err := sim.Run()
	require.NoError(t, err)

	for _, p := range players {
		stats := report.Stats[p.Name]
		assert.Equal(t, report.RoundsPlayed, stats.Rounds+stats.Skips,
			"every round produces exactly one result for %s", p.Name)
		assert.InDelta(t, 100+stats.TotalPayout, report.FinalBankrolls[p.Name], 1e-9,
			"payouts must account for the full bankroll change for %s", p.Name)
	}
}

func TestSimulator_Run_SmallShoeReshuffles(t *testing.T) {
	p, err := game.NewPlayer("mia", strategy.NewThreshold(16), game.WithBankroll(5000))
	require.NoError(t, err)

	rules := game.DefaultRules()
	rules.Decks = 1

	// 200 rounds churn through a single deck many times over; the
	// reshuffle threshold must fire before the shoe can empty.
	sim := New(Config{
		Rules:   rules,
		Players: []*game.Player{p},
		Rounds:  200,
		Seed:    42,
		Logger:  testLogger(),
		Clock:   quartz.NewMock(t),
	})

	report, err := sim.Run()
	require.NoError(t, err)
	assert.Equal(t, 200, report.RoundsPlayed)
}

func TestSimulator_Run_StopsWhenNoOneCanBet(t *testing.T) {
	p, err := game.NewPlayer("shorty", strategy.NewThreshold(16), game.WithBankroll(5))
	require.NoError(t, err)

	sim := New(Config{
		Rules:   game.DefaultRules(),
		Players: []*game.Player{p},
		Rounds:  50,
		Seed:    1,
		Logger:  testLogger(),
		Clock:   quartz.NewMock(t),
	})

	report, err := sim.Run()
	require.NoError(t, err)

	assert.Equal(t, 0, report.RoundsPlayed)
	assert.Equal(t, 5.0, report.FinalBankrolls["shorty"])
	assert.Equal(t, 0, report.Stats["shorty"].Rounds)
}

func TestSimulator_Run_InvalidConfig(t *testing.T) {
	p1, err := game.NewPlayer("mia", strategy.NewThreshold(16))
	require.NoError(t, err)
	p2, err := game.NewPlayer("mia", strategy.NewThreshold(16))
	require.NoError(t, err)

	sim := New(Config{
		Rules:   game.DefaultRules(),
		Players: []*game.Player{p1, p2},
		Rounds:  5,
		Seed:    1,
		Logger:  testLogger(),
	})

	_, err = sim.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestSimulator_Run_RoundErrorPropagates(t *testing.T) {
	p, err := game.NewPlayer("broken", failingStrategy{})
	require.NoError(t, err)

	sim := New(Config{
		Rules:   game.DefaultRules(),
		Players: []*game.Player{p},
		Rounds:  20,
		Seed:    3,
		Logger:  testLogger(),
	})

	_, err = sim.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "round")
	assert.Contains(t, err.Error(), "no decision")
}

func TestPlaySingleGame(t *testing.T) {
	play := func() map[string]int {
		p1, err := game.NewPlayer("mia", strategy.NewThreshold(16))
		require.NoError(t, err)
		p2, err := game.NewPlayer("noah", strategy.NewMirror(false))
		require.NoError(t, err)

		totals, err := PlaySingleGame(game.DefaultRules(), p1, p2, 12345, testLogger())
		require.NoError(t, err)
		return totals
	}

	totals := play()

	require.Contains(t, totals, "mia")
	require.Contains(t, totals, "noah")
	require.Contains(t, totals, "Bank")
	assert.Len(t, totals, 3)

	// Fresh players always afford the first round, so everyone holds at
	// least two cards.
	assert.GreaterOrEqual(t, totals["mia"], 4)
	assert.GreaterOrEqual(t, totals["noah"], 4)
	assert.GreaterOrEqual(t, totals["Bank"], 4)

	assert.Equal(t, totals, play(), "same seed should replay the same game")
}

func TestSweep(t *testing.T) {
	cfg := SweepConfig{
		Rules:  game.DefaultRules(),
		Rounds: 10,
		Seeds:  []int64{1, 2, 3, 4},
		NewPlayers: func() ([]*game.Player, error) {
			p, err := game.NewPlayer("mia", strategy.NewThreshold(16))
			if err != nil {
				return nil, err
			}
			return []*game.Player{p}, nil
		},
		Logger: testLogger(),
	}

	report, err := Sweep(cfg)
	require.NoError(t, err)
	require.Len(t, report.Seeds, 4)
	require.Len(t, report.Reports, 4)

	finals := report.FinalBankrolls("mia")
	require.Len(t, finals, 4)

	// A sweep seed must match the same seed run on its own
	p, err := game.NewPlayer("mia", strategy.NewThreshold(16))
	require.NoError(t, err)
	solo := New(Config{
		Rules:   cfg.Rules,
		Players: []*game.Player{p},
		Rounds:  cfg.Rounds,
		Seed:    2,
		Logger:  testLogger(),
	})
	soloReport, err := solo.Run()
	require.NoError(t, err)
	assert.Equal(t, soloReport.FinalBankrolls["mia"], report.Reports[2].FinalBankrolls["mia"])

	expectedMean := (finals[0] + finals[1] + finals[2] + finals[3]) / 4
	assert.InDelta(t, expectedMean, report.MeanFinalBankroll("mia"), 1e-9)
}

func TestSweep_Deterministic(t *testing.T) {
	cfg := SweepConfig{
		Rules:  game.DefaultRules(),
		Rounds: 10,
		Seeds:  []int64{11, 12, 13},
		NewPlayers: func() ([]*game.Player, error) {
			p, err := game.NewPlayer("mia", strategy.NewThreshold(16))
			if err != nil {
				return nil, err
			}
			return []*game.Player{p}, nil
		},
		Logger:  testLogger(),
		Workers: 2,
	}

	first, err := Sweep(cfg)
	require.NoError(t, err)
	second, err := Sweep(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.FinalBankrolls("mia"), second.FinalBankrolls("mia"),
		"parallel workers must not change per-seed results")
}

func TestSweep_Validation(t *testing.T) {
	factory := func() ([]*game.Player, error) {
		p, err := game.NewPlayer("mia", strategy.NewThreshold(16))
		if err != nil {
			return nil, err
		}
		return []*game.Player{p}, nil
	}

	_, err := Sweep(SweepConfig{NewPlayers: factory, Logger: testLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed")

	_, err = Sweep(SweepConfig{Seeds: []int64{1}, Logger: testLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "factory")
}

func TestSweep_FactoryErrorPropagates(t *testing.T) {
	cfg := SweepConfig{
		Rules:  game.DefaultRules(),
		Rounds: 1,
		Seeds:  []int64{1},
		NewPlayers: func() ([]*game.Player, error) {
			return nil, errors.New("boom")
		},
		Logger: testLogger(),
	}

	_, err := Sweep(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
