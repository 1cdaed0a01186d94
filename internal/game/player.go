package game

import (
	"errors"
	"fmt"
)

// Defaults applied when a player is constructed without options.
const (
	DefaultBankroll = 100.0
	DefaultBet      = 10.0
)

// Player binds a name, a strategy, a bankroll and the bet placed each
// round. The engine adjusts the bankroll in place as rounds resolve.
type Player struct {
	Name     string
	Strategy Strategy
	Bankroll float64
	Bet      float64
}

// PlayerOption configures a Player during creation.
type PlayerOption func(*Player)

// NewPlayer creates a player with the default bankroll and bet unless
// options say otherwise.
//
//	p, err := game.NewPlayer("mia", strategy.NewThreshold(16),
//	    game.WithBankroll(500),
//	    game.WithBet(25))
func NewPlayer(name string, strategy Strategy, opts ...PlayerOption) (*Player, error) {
	if strategy == nil {
		panic("game: strategy is required")
	}

	p := &Player{
		Name:     name,
		Strategy: strategy,
		Bankroll: DefaultBankroll,
		Bet:      DefaultBet,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.Name == "" {
		return nil, errors.New("game: player name is required")
	}
	if p.Bankroll <= 0 {
		return nil, fmt.Errorf("game: player %q: bankroll must be positive, got %v", p.Name, p.Bankroll)
	}
	if p.Bet <= 0 {
		return nil, fmt.Errorf("game: player %q: bet must be positive, got %v: %w", p.Name, p.Bet, ErrInvalidBet)
	}
	return p, nil
}

// WithBankroll sets the starting bankroll. Default is 100.
func WithBankroll(amount float64) PlayerOption {
	return func(p *Player) {
		p.Bankroll = amount
	}
}

// WithBet sets the amount wagered each round. Default is 10.
func WithBet(amount float64) PlayerOption {
	return func(p *Player) {
		p.Bet = amount
	}
}

// CanBet reports whether the bankroll covers the configured bet
func (p *Player) CanBet() bool {
	return p.Bankroll >= p.Bet
}
