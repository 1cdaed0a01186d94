package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rules   game.Rules
	Players []*game.Player
	Rounds  int
	Seed    int64
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Simulator runs multi-round blackjack simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration. A nil logger
// discards output and a nil clock uses real time.
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Report summarises a finished run
type Report struct {
	RoundsPlayed   int
	Elapsed        time.Duration
	FinalBankrolls map[string]float64
	Stats          map[string]*statistics.PlayerStats
}

// Run executes the simulation and returns aggregated results. The run
// stops early once no player can cover their bet.
func (s *Simulator) Run() (*Report, error) {
	rng := randutil.New(s.config.Seed)

	g, err := game.NewGame(s.config.Rules, s.config.Players, rng,
		game.WithLogger(s.config.Logger))
	if err != nil {
		return nil, err
	}

	stats := make(map[string]*statistics.PlayerStats, len(s.config.Players))
	players := make(map[string]*game.Player, len(s.config.Players))
	for _, p := range s.config.Players {
		stats[p.Name] = statistics.New(p.Name, p.Bankroll)
		players[p.Name] = p
	}

	s.config.Logger.Debug("Starting simulation",
		"rounds", s.config.Rounds,
		"players", len(s.config.Players),
		"seed", s.config.Seed)

	start := s.config.Clock.Now()

	played := 0
	for round := 0; round < s.config.Rounds; round++ {
		if allEliminated(s.config.Players) {
			s.config.Logger.Debug("Stopping early, every player is eliminated",
				"round", round)
			break
		}

		results, err := g.PlayRound()
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		played++

		for _, result := range results {
			p := players[result.PlayerName]
			stats[p.Name].Add(result, p.Bet, p.Bankroll)
		}
	}

	elapsed := s.config.Clock.Since(start)

	// Validate statistics before returning
	for name, ps := range stats {
		if err := ps.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", name, err)
		}
	}

	report := &Report{
		RoundsPlayed:   played,
		Elapsed:        elapsed,
		FinalBankrolls: make(map[string]float64, len(s.config.Players)),
		Stats:          stats,
	}
	for _, p := range s.config.Players {
		report.FinalBankrolls[p.Name] = p.Bankroll
	}

	s.config.Logger.Debug("Simulation finished",
		"roundsPlayed", played,
		"elapsed", elapsed)

	return report, nil
}

// allEliminated reports whether no player can cover their bet
func allEliminated(players []*game.Player) bool {
	for _, p := range players {
		if p.CanBet() {
			return false
		}
	}
	return true
}

// PlaySingleGame plays one round between two players and returns the final
// hand totals keyed by player name, with the dealer's total under "Bank".
func PlaySingleGame(rules game.Rules, p1, p2 *game.Player, seed int64, logger *log.Logger) (map[string]int, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g, err := game.NewGame(rules, []*game.Player{p1, p2}, randutil.New(seed),
		game.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	results, err := g.PlayRound()
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int, len(results)+1)
	totals["Bank"] = 0
	for _, result := range results {
		totals[result.PlayerName] = result.PlayerTotal
		if result.Outcome != game.OutcomeSkip {
			totals["Bank"] = result.DealerTotal
		}
	}
	return totals, nil
}
