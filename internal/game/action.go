package game

import (
	"fmt"
	"strings"
)

// Action is a move a player can take during their turn. The engine only
// offers Hit and Stand; the type leaves room for Double and Split without
// the engine dealing them out.
type Action int

const (
	Hit Action = iota
	Stand
)

// String returns the lowercase action name
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction converts a user-supplied action name into an Action.
// Matching is case insensitive and accepts the shorthand "h" and "s".
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, nil
	case "stand", "s":
		return Stand, nil
	default:
		return 0, fmt.Errorf("game: unknown action %q", s)
	}
}
