package game

import "fmt"

// Rules is the table configuration the engine plays under. All of it is
// explicit; nothing here is a hidden constant.
type Rules struct {
	// Decks is the number of 52-card decks loaded into the shoe.
	Decks int

	// DealerHitsSoft17 makes the dealer hit a soft 17 instead of standing.
	DealerHitsSoft17 bool

	// BlackjackPayout is the multiplier paid on a natural, 1.5 for the
	// usual 3:2 table.
	BlackjackPayout float64

	// ReshuffleBelow triggers a reshuffle before any round that starts
	// with fewer cards than this in the shoe.
	ReshuffleBelow int
}

// DefaultRules returns a six-deck table paying 3:2 with the dealer
// standing on all 17s.
func DefaultRules() Rules {
	return Rules{
		Decks:            6,
		DealerHitsSoft17: false,
		BlackjackPayout:  1.5,
		ReshuffleBelow:   15,
	}
}

// Validate checks the rules describe a playable table
func (r Rules) Validate() error {
	if r.Decks < 1 {
		return fmt.Errorf("game: rules need at least one deck, got %d", r.Decks)
	}
	if r.BlackjackPayout < 1 {
		return fmt.Errorf("game: blackjack payout must be at least 1, got %v", r.BlackjackPayout)
	}
	if r.ReshuffleBelow < 0 {
		return fmt.Errorf("game: reshuffle threshold cannot be negative, got %d", r.ReshuffleBelow)
	}
	return nil
}
