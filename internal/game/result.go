package game

// Outcome classifies how a round ended for one player.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomePush      Outcome = "push"
	OutcomeBlackjack Outcome = "blackjack"

	// OutcomeSkip records a player who sat the round out because their
	// bankroll could not cover the bet. No cards were dealt to them and
	// their bankroll is untouched.
	OutcomeSkip Outcome = "skip"
)

// Result is the outcome of a single round for one player. Payout is the
// signed bankroll delta the round applied: negative on a loss, zero on a
// push or skip.
type Result struct {
	PlayerName  string
	Outcome     Outcome
	Payout      float64
	PlayerTotal int
	DealerTotal int
	IsBlackjack bool
}
