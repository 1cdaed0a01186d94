package game

import "github.com/lox/blackjack/internal/deck"

// RoundSnapshot is the read-only view of the round a strategy decides from.
// The hand is a copy; mutating it changes nothing at the table.
type RoundSnapshot struct {
	RoundNumber    int
	Hand           Hand
	DealerUpcard   deck.Card
	AllowedActions []Action
	CardsRemaining int
	PlayerBankroll float64
	BetAmount      float64
}

// Allows reports whether the action is in the snapshot's allowed set
func (s RoundSnapshot) Allows(action Action) bool {
	for _, a := range s.AllowedActions {
		if a == action {
			return true
		}
	}
	return false
}

// Strategy makes decisions for a player. Strategies receive immutable
// snapshots and return decisions; they never own or mutate game state.
//
// Decide must return an action present in the snapshot's allowed set. A
// returned error, or an action outside the set, fails the whole round:
// both signal a broken strategy, not a losing play.
type Strategy interface {
	// Name identifies the strategy in logs and errors
	Name() string

	// Decide picks the next action for the hand in the snapshot
	Decide(snapshot RoundSnapshot) (Action, error)

	// RoundStarted runs before the player's first decision of a round.
	// Strategies can use it to reset per-round state.
	RoundStarted(snapshot RoundSnapshot)

	// RoundEnded runs once the round settles, with the player's outcome and
	// the signed payout already applied to their bankroll.
	RoundEnded(snapshot RoundSnapshot, outcome Outcome, payout float64)
}

// BaseStrategy provides no-op lifecycle hooks so strategies only implement
// what they care about.
type BaseStrategy struct{}

func (BaseStrategy) RoundStarted(RoundSnapshot) {}

func (BaseStrategy) RoundEnded(RoundSnapshot, Outcome, float64) {}
