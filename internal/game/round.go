package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
)

// Shoe is the engine's view of the card source. *deck.Shoe implements it;
// tests substitute stacked shoes to pin exact deals.
type Shoe interface {
	Draw() (deck.Card, error)
	Remaining() int
	Reshuffle()
}

// Game orchestrates blackjack rounds between a fixed set of players and
// the dealer. All mutation happens on the calling goroutine; one round
// fully completes before the next begins.
type Game struct {
	rules   Rules
	players []*Player
	shoe    Shoe
	logger  *log.Logger
	round   int
}

// GameOption configures a Game during creation.
type GameOption func(*gameConfig)

type gameConfig struct {
	logger *log.Logger
	shoe   Shoe
}

// WithLogger sets the logger the engine narrates rounds to.
// Default discards everything.
func WithLogger(logger *log.Logger) GameOption {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithShoe sets a specific shoe, overriding the one built from the rules.
// The RNG is still required for game creation.
func WithShoe(shoe Shoe) GameOption {
	return func(c *gameConfig) {
		c.shoe = shoe
	}
}

// NewGame creates a game with required RNG and optional configuration.
// The RNG is required to make randomness explicit and testing
// deterministic.
//
//	// Production - entropy-seeded RNG
//	seed, _ := randutil.EntropySeed()
//	g, err := game.NewGame(game.DefaultRules(), players, randutil.New(seed))
//
//	// Testing - fixed seed
//	g, err := game.NewGame(game.DefaultRules(), players, randutil.New(42))
func NewGame(rules Rules, players []*Player, rng *rand.Rand, opts ...GameOption) (*Game, error) {
	if rng == nil {
		panic("game: rng is required")
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return nil, errors.New("game: at least one player required")
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if seen[p.Name] {
			return nil, fmt.Errorf("game: duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}

	cfg := &gameConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	shoe := cfg.shoe
	if shoe == nil {
		s, err := deck.NewShoe(rules.Decks, rng)
		if err != nil {
			return nil, err
		}
		shoe = s
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Game{
		rules:   rules,
		players: players,
		shoe:    shoe,
		logger:  logger.WithPrefix("game"),
	}, nil
}

// Players returns the players seated at the game
func (g *Game) Players() []*Player {
	return g.players
}

// Round returns the number of rounds started so far
func (g *Game) Round() int {
	return g.round
}

// Rules returns the table configuration
func (g *Game) Rules() Rules {
	return g.rules
}

// seat is the per-round state of one participating player.
type seat struct {
	player *Player
	hand   *Hand
	bet    float64
}

// PlayRound plays a single round and returns one Result per player,
// including skip results for players who could not cover their bet.
//
// An error leaves bankrolls untouched: every failure path returns before
// any bet is settled.
func (g *Game) PlayRound() ([]Result, error) {
	g.round++
	g.logger.Debug("Starting round", "round", g.round, "shoe", g.shoe.Remaining())

	for _, p := range g.players {
		if p.Bet <= 0 {
			return nil, fmt.Errorf("game: player %q bet %v: %w", p.Name, p.Bet, ErrInvalidBet)
		}
	}

	if g.shoe.Remaining() < g.rules.ReshuffleBelow {
		g.logger.Debug("Reshuffling shoe", "remaining", g.shoe.Remaining(), "threshold", g.rules.ReshuffleBelow)
		g.shoe.Reshuffle()
	}

	var results []Result
	var seats []*seat
	for _, p := range g.players {
		if !p.CanBet() {
			g.logger.Debug("Player sits out", "player", p.Name, "bankroll", p.Bankroll, "bet", p.Bet)
			results = append(results, Result{PlayerName: p.Name, Outcome: OutcomeSkip})
			continue
		}
		seats = append(seats, &seat{player: p, hand: &Hand{}, bet: p.Bet})
	}
	if len(seats) == 0 {
		return results, nil
	}

	// Initial deal, strictly round-robin: one card to each player in
	// registration order then one to the dealer, twice.
	dealerHand := &Hand{}
	for i := 0; i < 2; i++ {
		for _, s := range seats {
			card, err := g.shoe.Draw()
			if err != nil {
				return nil, fmt.Errorf("game: dealing to %s: %w", s.player.Name, err)
			}
			s.hand.Add(card)
		}
		card, err := g.shoe.Draw()
		if err != nil {
			return nil, fmt.Errorf("game: dealing to dealer: %w", err)
		}
		dealerHand.Add(card)
	}
	upcard := dealerHand.Cards()[0]
	g.logger.Debug("Dealer shows", "upcard", upcard)

	for _, s := range seats {
		if err := g.playTurn(s, upcard); err != nil {
			return nil, err
		}
	}

	if err := g.playDealer(dealerHand, seats); err != nil {
		return nil, err
	}

	dealerTotal := dealerHand.BestValue()
	dealerBust := dealerHand.IsBust()
	dealerNatural := dealerHand.IsBlackjack()
	g.logger.Debug("Dealer done", "hand", dealerHand, "total", dealerTotal, "bust", dealerBust)

	for _, s := range seats {
		outcome, payout := g.resolve(s, dealerTotal, dealerBust, dealerNatural)
		s.player.Bankroll += payout

		results = append(results, Result{
			PlayerName:  s.player.Name,
			Outcome:     outcome,
			Payout:      payout,
			PlayerTotal: s.hand.BestValue(),
			DealerTotal: dealerTotal,
			IsBlackjack: s.hand.IsBlackjack(),
		})

		end := g.snapshot(s, upcard)
		end.AllowedActions = nil
		s.player.Strategy.RoundEnded(end, outcome, payout)

		g.logger.Debug("Round resolved",
			"player", s.player.Name,
			"outcome", outcome,
			"payout", payout,
			"total", s.hand.BestValue(),
			"dealer", dealerTotal,
			"bankroll", s.player.Bankroll)
	}

	return results, nil
}

// playTurn runs one player's turn to completion. A natural ends the turn
// before any decision is asked for.
func (g *Game) playTurn(s *seat, upcard deck.Card) error {
	p := s.player
	p.Strategy.RoundStarted(g.snapshot(s, upcard))
	g.logger.Debug("Turn starts", "player", p.Name, "hand", s.hand, "total", s.hand.BestValue())

	if s.hand.IsBlackjack() {
		g.logger.Debug("Natural blackjack", "player", p.Name)
		return nil
	}

	for {
		snap := g.snapshot(s, upcard)
		action, err := p.Strategy.Decide(snap)
		if err != nil {
			return fmt.Errorf("game: strategy %s for %s: %w", p.Strategy.Name(), p.Name, err)
		}
		if !snap.Allows(action) {
			return fmt.Errorf("game: strategy %s for %s returned %s: %w", p.Strategy.Name(), p.Name, action, ErrInvalidAction)
		}

		switch action {
		case Hit:
			card, err := g.shoe.Draw()
			if err != nil {
				return fmt.Errorf("game: drawing for %s: %w", p.Name, err)
			}
			s.hand.Add(card)
			g.logger.Debug("Player hits", "player", p.Name, "card", card, "total", s.hand.BestValue())
			if s.hand.IsBust() {
				g.logger.Debug("Player busts", "player", p.Name, "hand", s.hand)
				return nil
			}
		case Stand:
			g.logger.Debug("Player stands", "player", p.Name, "total", s.hand.BestValue())
			return nil
		}
	}
}

// playDealer runs the dealer's turn. The dealer does not play when every
// player busted; the two-card hand stands as dealt for reporting.
func (g *Game) playDealer(dealerHand *Hand, seats []*seat) error {
	anyLive := false
	for _, s := range seats {
		if !s.hand.IsBust() {
			anyLive = true
			break
		}
	}
	if !anyLive {
		g.logger.Debug("Dealer stands pat, every player busted")
		return nil
	}

	for g.dealerShouldHit(dealerHand) {
		card, err := g.shoe.Draw()
		if err != nil {
			return fmt.Errorf("game: dealer draw: %w", err)
		}
		dealerHand.Add(card)
		g.logger.Debug("Dealer draws", "card", card, "total", dealerHand.BestValue())
	}
	return nil
}

// dealerShouldHit applies the fixed house policy to the dealer's own hand
func (g *Game) dealerShouldHit(h *Hand) bool {
	best := h.BestValue()
	if best < 17 {
		return true
	}
	return best == 17 && h.IsSoft() && g.rules.DealerHitsSoft17
}

// resolve settles one seat against the dealer. Order matters: a bust loses
// before anything else is considered, and a natural beats any non-natural
// 21.
func (g *Game) resolve(s *seat, dealerTotal int, dealerBust, dealerNatural bool) (Outcome, float64) {
	total := s.hand.BestValue()
	natural := s.hand.IsBlackjack()

	switch {
	case s.hand.IsBust():
		return OutcomeLose, -s.bet
	case natural && !dealerNatural:
		return OutcomeBlackjack, s.bet * g.rules.BlackjackPayout
	case dealerBust:
		return OutcomeWin, s.bet
	case dealerNatural && !natural:
		return OutcomeLose, -s.bet
	case total > dealerTotal:
		return OutcomeWin, s.bet
	case total < dealerTotal:
		return OutcomeLose, -s.bet
	default:
		return OutcomePush, 0
	}
}

// snapshot builds the immutable view a strategy decides from
func (g *Game) snapshot(s *seat, upcard deck.Card) RoundSnapshot {
	return RoundSnapshot{
		RoundNumber:    g.round,
		Hand:           s.hand.Clone(),
		DealerUpcard:   upcard,
		AllowedActions: []Action{Hit, Stand},
		CardsRemaining: g.shoe.Remaining(),
		PlayerBankroll: s.player.Bankroll,
		BetAmount:      s.bet,
	}
}
