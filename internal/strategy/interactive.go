package strategy

import (
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/tui"
)

// PromptFunc asks the player for an action and blocks until they answer
type PromptFunc func(game.RoundSnapshot) (game.Action, error)

// Interactive defers every decision to a human through a blocking prompt.
// The engine treats it like any other strategy; the prompt call is the
// only place a round waits on the outside world.
type Interactive struct {
	game.BaseStrategy
	prompt PromptFunc
}

// NewInteractive creates an interactive strategy. A nil prompt uses the
// terminal prompt from internal/tui.
func NewInteractive(prompt PromptFunc) *Interactive {
	if prompt == nil {
		prompt = tui.PromptAction
	}
	return &Interactive{prompt: prompt}
}

func (i *Interactive) Name() string {
	return "Interactive"
}

// Decide blocks on the prompt until the player picks an action
func (i *Interactive) Decide(snapshot game.RoundSnapshot) (game.Action, error) {
	return i.prompt(snapshot)
}
