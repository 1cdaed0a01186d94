package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/strategy"
)

func ptr[T any](v T) *T { return &v }

func TestResolveStrategy(t *testing.T) {
	rules := game.DefaultRules()

	t.Run("simple is the threshold strategy", func(t *testing.T) {
		s, err := resolveStrategy("simple", rules)
		require.NoError(t, err)
		assert.IsType(t, &strategy.Threshold{}, s)
		assert.Equal(t, "Simple Hit 16", s.Name())
	})

	t.Run("names are case insensitive", func(t *testing.T) {
		s, err := resolveStrategy("SIMPLE", rules)
		require.NoError(t, err)
		assert.IsType(t, &strategy.Threshold{}, s)
	})

	t.Run("dealer is the mirror strategy", func(t *testing.T) {
		s, err := resolveStrategy("dealer", rules)
		require.NoError(t, err)
		assert.IsType(t, &strategy.Mirror{}, s)
	})

	t.Run("mirror follows the table soft-17 rule", func(t *testing.T) {
		soft17 := rules
		soft17.DealerHitsSoft17 = true
		s, err := resolveStrategy("mirror", soft17)
		require.NoError(t, err)

		snap := game.RoundSnapshot{
			Hand:           game.NewHand(deck.MustParseCards("Ah6s")...),
			DealerUpcard:   deck.MustParseCards("9d")[0],
			AllowedActions: []game.Action{game.Hit, game.Stand},
		}
		action, err := s.Decide(snap)
		require.NoError(t, err)
		assert.Equal(t, game.Hit, action, "soft-17 mirror should hit a soft 17")
	})

	t.Run("console is the interactive strategy", func(t *testing.T) {
		s, err := resolveStrategy("console", rules)
		require.NoError(t, err)
		assert.IsType(t, &strategy.Interactive{}, s)
	})

	t.Run("a .lua path loads a script", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), "seventeen.lua")
		source := "function decide(snapshot)\n" +
			"  if snapshot.total < 17 then\n" +
			"    return \"hit\"\n" +
			"  end\n" +
			"  return \"stand\"\n" +
			"end\n"
		require.NoError(t, os.WriteFile(script, []byte(source), 0o644))

		s, err := resolveStrategy(script, rules)
		require.NoError(t, err)
		assert.IsType(t, &strategy.Lua{}, s)
	})

	t.Run("unknown names fail", func(t *testing.T) {
		_, err := resolveStrategy("martingale", rules)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownStrategy))
		assert.Contains(t, err.Error(), "martingale")
	})
}

func TestParsePlayerSpec(t *testing.T) {
	tests := []struct {
		definition string
		want       playerSpec
		wantErr    bool
	}{
		{
			definition: "mia:simple",
			want:       playerSpec{Name: "mia", Strategy: "simple", Bankroll: 100, Bet: 10},
		},
		{
			definition: "mia:simple:250",
			want:       playerSpec{Name: "mia", Strategy: "simple", Bankroll: 250, Bet: 10},
		},
		{
			definition: "mia:simple:250:25",
			want:       playerSpec{Name: "mia", Strategy: "simple", Bankroll: 250, Bet: 25},
		},
		{
			definition: "mia:simple::25",
			want:       playerSpec{Name: "mia", Strategy: "simple", Bankroll: 100, Bet: 25},
		},
		{
			definition: "mia:bots/seventeen.lua:200:20",
			want:       playerSpec{Name: "mia", Strategy: "bots/seventeen.lua", Bankroll: 200, Bet: 20},
		},
		{definition: "mia", wantErr: true},
		{definition: "mia:", wantErr: true},
		{definition: ":simple", wantErr: true},
		{definition: "mia:simple:1:2:3", wantErr: true},
		{definition: "mia:simple:abc", wantErr: true},
		{definition: "mia:simple:100:xyz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.definition, func(t *testing.T) {
			spec, err := parsePlayerSpec(tt.definition)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestTablePlayers(t *testing.T) {
	t.Run("defaults to the built-in pair", func(t *testing.T) {
		specs, err := tablePlayers(config.Default(), nil)
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, "Simple", specs[0].Name)
		assert.Equal(t, "simple", specs[0].Strategy)
		assert.Equal(t, "Dealer", specs[1].Name)
		assert.Equal(t, "dealer", specs[1].Strategy)
	})

	t.Run("keeps configured players", func(t *testing.T) {
		cfg := config.Default()
		cfg.Players = []config.PlayerConfig{
			{Name: "mia", Strategy: "mirror", Bankroll: 250, Bet: 25},
		}

		specs, err := tablePlayers(cfg, nil)
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, playerSpec{Name: "mia", Strategy: "mirror", Bankroll: 250, Bet: 25}, specs[0])
	})

	t.Run("a definition replaces a configured entry of the same name", func(t *testing.T) {
		cfg := config.Default()
		cfg.Players = []config.PlayerConfig{
			{Name: "mia", Strategy: "mirror", Bankroll: 250, Bet: 25},
			{Name: "noah", Strategy: "simple", Bankroll: 100, Bet: 10},
		}

		specs, err := tablePlayers(cfg, []string{"mia:simple:500"})
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, playerSpec{Name: "mia", Strategy: "simple", Bankroll: 500, Bet: 10}, specs[0])
		assert.Equal(t, "noah", specs[1].Name)
	})

	t.Run("new names are appended", func(t *testing.T) {
		cfg := config.Default()
		cfg.Players = []config.PlayerConfig{
			{Name: "mia", Strategy: "mirror", Bankroll: 100, Bet: 10},
		}

		specs, err := tablePlayers(cfg, []string{"zoe:simple"})
		require.NoError(t, err)
		require.Len(t, specs, 2)
		assert.Equal(t, "zoe", specs[1].Name)
	})

	t.Run("bad definitions fail", func(t *testing.T) {
		_, err := tablePlayers(config.Default(), []string{"nonsense"})
		require.Error(t, err)
	})
}

func TestBuildPlayers(t *testing.T) {
	specs := []playerSpec{
		{Name: "mia", Strategy: "simple", Bankroll: 250, Bet: 25},
		{Name: "noah", Strategy: "dealer", Bankroll: 100, Bet: 10},
	}

	players, err := buildPlayers(specs, game.DefaultRules())
	require.NoError(t, err)
	require.Len(t, players, 2)

	assert.Equal(t, "mia", players[0].Name)
	assert.InDelta(t, 250, players[0].Bankroll, 1e-9)
	assert.InDelta(t, 25, players[0].Bet, 1e-9)
	assert.Equal(t, "Simple Hit 16", players[0].Strategy.Name())
	assert.Equal(t, "Dealer Rules", players[1].Strategy.Name())
}

func TestBuildPlayers_UnknownStrategy(t *testing.T) {
	_, err := buildPlayers([]playerSpec{
		{Name: "mia", Strategy: "martingale", Bankroll: 100, Bet: 10},
	}, game.DefaultRules())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
}

func TestBuildRules(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Decks = 4

	t.Run("config values pass through", func(t *testing.T) {
		rules := buildRules(cfg, nil, nil, nil, nil)
		assert.Equal(t, 4, rules.Decks)
		assert.InDelta(t, 1.5, rules.BlackjackPayout, 1e-9)
	})

	t.Run("flags override the file", func(t *testing.T) {
		rules := buildRules(cfg, ptr(8), ptr(true), ptr(1.2), ptr(30))
		assert.Equal(t, 8, rules.Decks)
		assert.True(t, rules.DealerHitsSoft17)
		assert.InDelta(t, 1.2, rules.BlackjackPayout, 1e-9)
		assert.Equal(t, 30, rules.ReshuffleBelow)
	})
}

func TestHasInteractive(t *testing.T) {
	assert.False(t, hasInteractive([]playerSpec{{Strategy: "simple"}, {Strategy: "dealer"}}))
	assert.True(t, hasInteractive([]playerSpec{{Strategy: "simple"}, {Strategy: "console"}}))
	assert.True(t, hasInteractive([]playerSpec{{Strategy: "Interactive"}}))
}

func TestResolveSeed(t *testing.T) {
	seed, err := resolveSeed(42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seed)

	_, err = resolveSeed(0)
	require.NoError(t, err)
}
