package strategy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
)

const luaHit17 = `
name = "Lua Hit 17"

function decide(snapshot)
    if snapshot.total < 17 then
        return "hit"
    end
    return "stand"
end
`

func TestLuaDecideOnTotal(t *testing.T) {
	s, err := NewLuaFromString(luaHit17)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	action, err := s.Decide(decideSnapshot(t, "Th5h"))
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if action != game.Hit {
		t.Errorf("Expected hit on 15, got %s", action)
	}

	action, err = s.Decide(decideSnapshot(t, "ThKh"))
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if action != game.Stand {
		t.Errorf("Expected stand on 20, got %s", action)
	}
}

func TestLuaName(t *testing.T) {
	s, err := NewLuaFromString(luaHit17)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}
	if s.Name() != "Lua Hit 17" {
		t.Errorf("Expected name from script, got %q", s.Name())
	}
}

func TestLuaNameFallback(t *testing.T) {
	s, err := NewLuaFromString(`function decide(snapshot) return "stand" end`)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}
	if s.Name() != "lua" {
		t.Errorf("Expected fallback name, got %q", s.Name())
	}
}

func TestLuaSnapshotFields(t *testing.T) {
	script := `
function decide(snapshot)
    if snapshot.soft and snapshot.dealer_upcard >= 10 and #snapshot.cards == 2
        and snapshot.bet == 10 and snapshot.bankroll == 100
        and snapshot.cards_remaining == 300 and snapshot.round == 1 then
        return "hit"
    end
    return "stand"
end
`
	s, err := NewLuaFromString(script)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	snapshot := decideSnapshot(t, "Ah6h")
	snapshot.DealerUpcard = deck.MustParseCards("Kd")[0]

	action, err := s.Decide(snapshot)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if action != game.Hit {
		t.Error("Expected hit when every snapshot field matches")
	}

	snapshot.BetAmount = 25
	action, err = s.Decide(snapshot)
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if action != game.Stand {
		t.Error("Expected stand once the bet no longer matches")
	}
}

func TestLuaSeesCardStrings(t *testing.T) {
	script := `
function decide(snapshot)
    if snapshot.cards[1] == "T♥" and snapshot.cards[2] == "6♥" then
        return "stand"
    end
    return "hit"
end
`
	s, err := NewLuaFromString(script)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	action, err := s.Decide(decideSnapshot(t, "Th6h"))
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if action != game.Stand {
		t.Error("Expected the script to see the card strings")
	}
}

func TestLuaMissingDecide(t *testing.T) {
	_, err := NewLuaFromString(`name = "No Decide"`)
	if err == nil {
		t.Fatal("Expected error for script without decide")
	}
	if !strings.Contains(err.Error(), "decide") {
		t.Errorf("Expected decide in error, got: %v", err)
	}
}

func TestLuaSyntaxError(t *testing.T) {
	_, err := NewLuaFromString(`function decide(`)
	if err == nil {
		t.Fatal("Expected error for invalid script")
	}
}

func TestLuaInvalidReturn(t *testing.T) {
	s, err := NewLuaFromString(`function decide(snapshot) return "double" end`)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	_, err = s.Decide(decideSnapshot(t, "Th6h"))
	if err == nil {
		t.Fatal("Expected error for an unknown action")
	}
	if !strings.Contains(err.Error(), "double") {
		t.Errorf("Expected returned value in error, got: %v", err)
	}
}

func TestLuaNonStringReturn(t *testing.T) {
	s, err := NewLuaFromString(`function decide(snapshot) return 42 end`)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	_, err = s.Decide(decideSnapshot(t, "Th6h"))
	if err == nil {
		t.Fatal("Expected error for a non-string return")
	}
	if !strings.Contains(err.Error(), "must return") {
		t.Errorf("Expected return contract in error, got: %v", err)
	}
}

func TestLuaRuntimeErrorSurfaces(t *testing.T) {
	s, err := NewLuaFromString(`function decide(snapshot) error("no idea") end`)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	_, err = s.Decide(decideSnapshot(t, "Th6h"))
	if err == nil {
		t.Fatal("Expected runtime error to surface")
	}
	if !strings.Contains(err.Error(), "no idea") {
		t.Errorf("Expected script message in error, got: %v", err)
	}
}

func TestLuaFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seventeen.lua")
	if err := os.WriteFile(path, []byte(`function decide(snapshot) return "stand" end`), 0o644); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}

	s, err := NewLua(path)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}
	if s.Name() != "seventeen" {
		t.Errorf("Expected name from file, got %q", s.Name())
	}

	action, err := s.Decide(decideSnapshot(t, "Th6h"))
	if err != nil {
		t.Fatalf("Decide returned error: %v", err)
	}
	if action != game.Stand {
		t.Errorf("Expected stand, got %s", action)
	}
}

func TestLuaFromMissingFile(t *testing.T) {
	_, err := NewLua(filepath.Join(t.TempDir(), "missing.lua"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLuaPlaysFullRound(t *testing.T) {
	s, err := NewLuaFromString(luaHit17)
	if err != nil {
		t.Fatalf("Failed to load script: %v", err)
	}

	p, err := game.NewPlayer("lua", s)
	if err != nil {
		t.Fatalf("Failed to create player: %v", err)
	}

	g, err := game.NewGame(game.DefaultRules(), []*game.Player{p}, randutil.New(42))
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}

	results, err := g.PlayRound()
	if err != nil {
		t.Fatalf("PlayRound returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if got := 100 + results[0].Payout; p.Bankroll != got {
		t.Errorf("Expected bankroll %v after payout, got %v", got, p.Bankroll)
	}
}
