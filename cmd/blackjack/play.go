package main

import (
	"fmt"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/strategy"
)

// PlayCmd plays one round at the terminal against a chosen opponent
type PlayCmd struct {
	Opponent     string  `kong:"default='dealer',help='Opponent strategy'"`
	Name         string  `kong:"default='You',help='Name to sit down under'"`
	Bankroll     float64 `kong:"default='100',help='Starting bankroll'"`
	Bet          float64 `kong:"default='10',help='Bet placed on the round'"`
	DealerSoft17 bool    `kong:"help='Dealer hits soft 17'"`
	Seed         int64   `kong:"default='0',help='RNG seed (0 draws one from entropy)'"`
	Verbose      bool    `kong:"short='v',help='Log the engine detail'"`
}

func (c *PlayCmd) Run() error {
	logger := shared.SetupLogger(c.Verbose)

	rules := game.DefaultRules()
	rules.DealerHitsSoft17 = c.DealerSoft17

	human := &handRecorder{Strategy: strategy.NewInteractive(nil)}
	opponentStrategy, err := resolveStrategy(c.Opponent, rules)
	if err != nil {
		return err
	}
	opponent := &handRecorder{Strategy: opponentStrategy}

	p1, err := game.NewPlayer(c.Name, human,
		game.WithBankroll(c.Bankroll),
		game.WithBet(c.Bet))
	if err != nil {
		return err
	}
	p2, err := game.NewPlayer(opponentStrategy.Name(), opponent)
	if err != nil {
		return err
	}

	seed, err := resolveSeed(c.Seed)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ blackjack ♦ ♣ "))
	fmt.Println()

	totals, err := simulator.PlaySingleGame(rules, p1, p2, seed, logger)
	if err != nil {
		return err
	}

	display := game.NewRoundDisplay()
	if human.played {
		display.ShowHand(p1.Name, human.final.Hand)
	}
	if opponent.played {
		display.ShowHand(p2.Name, opponent.final.Hand)
	}
	fmt.Printf("Bank: %d\n", totals["Bank"])

	display.ShowResults([]game.Result{
		resultFor(p1.Name, human, totals["Bank"]),
		resultFor(p2.Name, opponent, totals["Bank"]),
	})
	display.ShowBankrolls([]*game.Player{p1, p2})
	return nil
}

// handRecorder keeps the final snapshot a strategy saw so the finished
// round can be shown after the engine settles it.
type handRecorder struct {
	game.Strategy
	final   game.RoundSnapshot
	outcome game.Outcome
	payout  float64
	played  bool
}

func (r *handRecorder) RoundEnded(snapshot game.RoundSnapshot, outcome game.Outcome, payout float64) {
	r.final = snapshot
	r.outcome = outcome
	r.payout = payout
	r.played = true
	r.Strategy.RoundEnded(snapshot, outcome, payout)
}

func resultFor(name string, rec *handRecorder, dealerTotal int) game.Result {
	if !rec.played {
		return game.Result{PlayerName: name, Outcome: game.OutcomeSkip}
	}
	return game.Result{
		PlayerName:  name,
		Outcome:     rec.outcome,
		Payout:      rec.payout,
		PlayerTotal: rec.final.Hand.BestValue(),
		DealerTotal: dealerTotal,
		IsBlackjack: rec.final.Hand.IsBlackjack(),
	}
}
