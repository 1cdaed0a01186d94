package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/strategy"
)

// ErrUnknownStrategy is returned when a player definition or config file
// names a strategy the registry does not know.
var ErrUnknownStrategy = errors.New("unknown strategy")

// availableStrategies describes the registry for help and error text
const availableStrategies = "simple (threshold), dealer (mirror), console (interactive), or a path to a .lua script"

// resolveStrategy builds a fresh strategy instance from its registry
// name. Mirror players copy the table's soft-17 rule so they really do
// play like the dealer.
func resolveStrategy(name string, rules game.Rules) (game.Strategy, error) {
	if strings.HasSuffix(name, ".lua") {
		return strategy.NewLua(name)
	}

	switch strings.ToLower(name) {
	case "simple", "threshold":
		return strategy.NewThreshold(strategy.DefaultThreshold), nil
	case "dealer", "mirror":
		return strategy.NewMirror(rules.DealerHitsSoft17), nil
	case "console", "interactive", "human":
		return strategy.NewInteractive(nil), nil
	}

	return nil, fmt.Errorf("%w %q, expected %s", ErrUnknownStrategy, name, availableStrategies)
}

// playerSpec is one seat definition before its strategy is resolved
type playerSpec struct {
	Name     string
	Strategy string
	Bankroll float64
	Bet      float64
}

// parsePlayerSpec parses a name:strategy[:bankroll][:bet] definition.
// Empty segments keep their defaults, so mia:simple::25 bets 25 from the
// default bankroll.
func parsePlayerSpec(definition string) (playerSpec, error) {
	parts := strings.Split(definition, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return playerSpec{}, fmt.Errorf("player definition %q must be name:strategy[:bankroll][:bet]", definition)
	}
	if len(parts) > 4 {
		return playerSpec{}, fmt.Errorf("player definition %q has too many fields", definition)
	}

	spec := playerSpec{
		Name:     parts[0],
		Strategy: parts[1],
		Bankroll: game.DefaultBankroll,
		Bet:      game.DefaultBet,
	}
	if len(parts) >= 3 && parts[2] != "" {
		v, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return playerSpec{}, fmt.Errorf("player %s: bad bankroll %q", spec.Name, parts[2])
		}
		spec.Bankroll = v
	}
	if len(parts) == 4 && parts[3] != "" {
		v, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return playerSpec{}, fmt.Errorf("player %s: bad bet %q", spec.Name, parts[3])
		}
		spec.Bet = v
	}
	return spec, nil
}

// tablePlayers merges configured players with --player definitions. A
// definition reusing a configured name replaces that entry, anything
// else is appended. With neither source the built-in pair plays: Simple
// (threshold) versus Dealer (mirror).
func tablePlayers(cfg *config.Config, definitions []string) ([]playerSpec, error) {
	var specs []playerSpec
	for _, p := range cfg.Players {
		specs = append(specs, playerSpec{
			Name:     p.Name,
			Strategy: p.Strategy,
			Bankroll: p.Bankroll,
			Bet:      p.Bet,
		})
	}

	for _, definition := range definitions {
		spec, err := parsePlayerSpec(definition)
		if err != nil {
			return nil, err
		}

		replaced := false
		for i := range specs {
			if specs[i].Name == spec.Name {
				specs[i] = spec
				replaced = true
				break
			}
		}
		if !replaced {
			specs = append(specs, spec)
		}
	}

	if len(specs) == 0 {
		specs = []playerSpec{
			{Name: "Simple", Strategy: "simple", Bankroll: game.DefaultBankroll, Bet: game.DefaultBet},
			{Name: "Dealer", Strategy: "dealer", Bankroll: game.DefaultBankroll, Bet: game.DefaultBet},
		}
	}
	return specs, nil
}

// buildPlayers resolves specs into seated players. Lua strategies carry
// interpreter state, so every call constructs its own instances.
func buildPlayers(specs []playerSpec, rules game.Rules) ([]*game.Player, error) {
	players := make([]*game.Player, 0, len(specs))
	for _, spec := range specs {
		strat, err := resolveStrategy(spec.Strategy, rules)
		if err != nil {
			return nil, err
		}
		p, err := game.NewPlayer(spec.Name, strat,
			game.WithBankroll(spec.Bankroll),
			game.WithBet(spec.Bet))
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// hasInteractive reports whether any spec would block on a terminal
func hasInteractive(specs []playerSpec) bool {
	for _, spec := range specs {
		switch strings.ToLower(spec.Strategy) {
		case "console", "interactive", "human":
			return true
		}
	}
	return false
}

// buildRules starts from the config file's rules and applies any
// explicit flag overrides. Nil pointers mean the flag was not given.
func buildRules(cfg *config.Config, decks *int, soft17 *bool, payout *float64, reshuffle *int) game.Rules {
	rules := cfg.Rules()
	if decks != nil {
		rules.Decks = *decks
	}
	if soft17 != nil {
		rules.DealerHitsSoft17 = *soft17
	}
	if payout != nil {
		rules.BlackjackPayout = *payout
	}
	if reshuffle != nil {
		rules.ReshuffleBelow = *reshuffle
	}
	return rules
}

// resolveSeed returns the seed to run under, drawing one from entropy
// when the flag was left at zero. The caller prints it so any run can be
// replayed.
func resolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	return randutil.EntropySeed()
}
