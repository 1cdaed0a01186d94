// Package statistics aggregates per-player round results across a
// simulation run.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/blackjack/internal/game"
)

// PlayerStats tracks one player's results over a run. Net results are
// recorded in units of the bet so different stake sizes stay comparable.
type PlayerStats struct {
	Name string

	Rounds int // rounds the player was dealt into
	Skips  int // rounds sat out for want of bankroll

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int

	SumUnits  float64
	SumUnits2 float64   // Sum of squares for variance calculation
	Units     []float64 // per-round net units, kept for median/percentile

	TotalPayout   float64
	StartBankroll float64

	lastBankroll float64
	peak         float64
	maxDrawdown  float64
}

// New creates stats for a player starting at the given bankroll
func New(name string, startBankroll float64) *PlayerStats {
	return &PlayerStats{
		Name:          name,
		StartBankroll: startBankroll,
		lastBankroll:  startBankroll,
		peak:          startBankroll,
	}
}

// Add incorporates one round result. bankroll is the player's bankroll
// after the round settled; bet is the stake the round was played at.
func (s *PlayerStats) Add(result game.Result, bet, bankroll float64) {
	if result.Outcome == game.OutcomeSkip {
		s.Skips++
		return
	}

	s.Rounds++
	switch result.Outcome {
	case game.OutcomeWin:
		s.Wins++
	case game.OutcomeLose:
		s.Losses++
	case game.OutcomePush:
		s.Pushes++
	case game.OutcomeBlackjack:
		s.Blackjacks++
	}

	var units float64
	if bet > 0 {
		units = result.Payout / bet
	}
	s.SumUnits += units
	s.SumUnits2 += units * units
	s.Units = append(s.Units, units)
	s.TotalPayout += result.Payout

	s.lastBankroll = bankroll
	if bankroll > s.peak {
		s.peak = bankroll
	}
	if dd := s.peak - bankroll; dd > s.maxDrawdown {
		s.maxDrawdown = dd
	}
}

// Mean returns the arithmetic mean of per-round net units
func (s *PlayerStats) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumUnits / float64(s.Rounds)
}

// Variance returns the sample variance of per-round net units
func (s *PlayerStats) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumUnits2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of per-round net units
func (s *PlayerStats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *PlayerStats) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *PlayerStats) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError() // 95% confidence
	return mean - margin, mean + margin
}

// Median returns the median per-round net in units
func (s *PlayerStats) Median() float64 {
	if len(s.Units) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Units))
	copy(sorted, s.Units)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *PlayerStats) Percentile(p float64) float64 {
	if len(s.Units) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Units))
	copy(sorted, s.Units)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of played rounds won, counting naturals
func (s *PlayerStats) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(s.Rounds)
}

// MaxDrawdown returns the largest peak-to-trough bankroll drop observed
func (s *PlayerStats) MaxDrawdown() float64 {
	return s.maxDrawdown
}

// FinalBankroll returns the bankroll after the last recorded round
func (s *PlayerStats) FinalBankroll() float64 {
	return s.lastBankroll
}

// Validate performs consistency checks on the accumulated data
func (s *PlayerStats) Validate() error {
	if got := s.Wins + s.Losses + s.Pushes + s.Blackjacks; got != s.Rounds {
		return fmt.Errorf("outcome counts total %d but %d rounds were played", got, s.Rounds)
	}
	if len(s.Units) != s.Rounds {
		return fmt.Errorf("units array length (%d) does not match rounds played (%d)",
			len(s.Units), s.Rounds)
	}
	if delta := s.lastBankroll - s.StartBankroll; math.Abs(s.TotalPayout-delta) > 1e-6 {
		return fmt.Errorf("payout ledger %.6f does not match bankroll delta %.6f",
			s.TotalPayout, delta)
	}
	return nil
}
