package strategy

import (
	"fmt"

	"github.com/lox/blackjack/internal/game"
)

// DefaultThreshold is the hit limit used when no limit is configured
const DefaultThreshold = 16

// Threshold is a simple strategy that hits while the hand total is below
// a fixed limit
type Threshold struct {
	game.BaseStrategy
	limit int
}

// NewThreshold creates a threshold strategy that hits below limit
func NewThreshold(limit int) *Threshold {
	return &Threshold{limit: limit}
}

func (t *Threshold) Name() string {
	return fmt.Sprintf("Simple Hit %d", t.limit)
}

func (t *Threshold) Decide(snapshot game.RoundSnapshot) (game.Action, error) {
	if snapshot.Hand.BestValue() < t.limit {
		return game.Hit, nil
	}
	return game.Stand, nil
}
