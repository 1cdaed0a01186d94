package strategy

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"

	"github.com/lox/blackjack/internal/game"
)

// Lua runs decisions through a user-supplied Lua script so strategy ideas
// can be tried without recompiling. The script must define a global
// decide function taking a snapshot table and returning "hit" or "stand":
//
//	function decide(snapshot)
//	    if snapshot.total < 17 then
//	        return "hit"
//	    end
//	    return "stand"
//	end
//
// The snapshot table carries round, total, soft, dealer_upcard,
// cards_remaining, bankroll, bet and a cards array of strings. An
// optional global name string labels the strategy in logs and reports.
type Lua struct {
	game.BaseStrategy
	state *lua.State
	name  string
}

// NewLua loads a strategy script from a file. The strategy name falls
// back to the file name when the script does not set one.
func NewLua(path string) (*Lua, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("strategy: loading lua script %s: %w", path, err)
	}

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return newLua(state, fallback)
}

// NewLuaFromString loads a strategy script from source, mainly for tests
// and embedded scripts.
func NewLuaFromString(source string) (*Lua, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("strategy: loading lua script: %w", err)
	}
	return newLua(state, "lua")
}

// newLua runs the loaded chunk and verifies the script's contract
func newLua(state *lua.State, fallbackName string) (*Lua, error) {
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return nil, fmt.Errorf("strategy: running lua script: %w", err)
	}

	state.Global("decide")
	if state.TypeOf(-1) != lua.TypeFunction {
		state.Pop(1)
		return nil, errors.New("strategy: lua script must define a decide function")
	}
	state.Pop(1)

	name := fallbackName
	state.Global("name")
	if state.TypeOf(-1) == lua.TypeString {
		if value, ok := state.ToString(-1); ok && value != "" {
			name = value
		}
	}
	state.Pop(1)

	return &Lua{state: state, name: name}, nil
}

func (l *Lua) Name() string {
	return l.name
}

// Decide calls the script's decide function with a snapshot table
func (l *Lua) Decide(snapshot game.RoundSnapshot) (game.Action, error) {
	defer l.state.SetTop(0)

	l.state.Global("decide")
	pushSnapshot(l.state, snapshot)
	if err := l.state.ProtectedCall(1, 1, 0); err != nil {
		return 0, fmt.Errorf("lua decide: %w", err)
	}

	if l.state.TypeOf(-1) != lua.TypeString {
		return 0, errors.New(`lua decide must return "hit" or "stand"`)
	}
	value, _ := l.state.ToString(-1)

	action, err := game.ParseAction(value)
	if err != nil {
		return 0, fmt.Errorf(`lua decide returned %q, want "hit" or "stand"`, value)
	}
	return action, nil
}

// pushSnapshot pushes a Lua table describing the snapshot
func pushSnapshot(state *lua.State, snapshot game.RoundSnapshot) {
	state.NewTable()

	state.PushInteger(snapshot.RoundNumber)
	state.SetField(-2, "round")

	state.PushInteger(snapshot.Hand.BestValue())
	state.SetField(-2, "total")

	state.PushBoolean(snapshot.Hand.IsSoft())
	state.SetField(-2, "soft")

	state.PushInteger(snapshot.DealerUpcard.Value())
	state.SetField(-2, "dealer_upcard")

	state.PushInteger(snapshot.CardsRemaining)
	state.SetField(-2, "cards_remaining")

	state.PushNumber(snapshot.PlayerBankroll)
	state.SetField(-2, "bankroll")

	state.PushNumber(snapshot.BetAmount)
	state.SetField(-2, "bet")

	state.NewTable()
	for i, card := range snapshot.Hand.Cards() {
		state.PushString(card.String())
		state.RawSetInt(-2, i+1)
	}
	state.SetField(-2, "cards")
}
