package strategy

import "github.com/lox/blackjack/internal/game"

// Mirror plays the dealer's fixed drawing rule from the player's seat:
// hit below 17, stand otherwise
type Mirror struct {
	game.BaseStrategy
	hitSoft17 bool
}

// NewMirror creates a mirror strategy. With hitSoft17 it also hits soft
// 17, matching tables where the dealer does the same.
func NewMirror(hitSoft17 bool) *Mirror {
	return &Mirror{hitSoft17: hitSoft17}
}

func (m *Mirror) Name() string {
	return "Dealer Rules"
}

func (m *Mirror) Decide(snapshot game.RoundSnapshot) (game.Action, error) {
	total := snapshot.Hand.BestValue()
	if total < 17 {
		return game.Hit, nil
	}
	if total == 17 && m.hitSoft17 && snapshot.Hand.IsSoft() {
		return game.Hit, nil
	}
	return game.Stand, nil
}
