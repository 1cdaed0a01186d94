package game

import "errors"

var (
	// ErrInvalidBet indicates a non-positive bet reached the engine. Bets a
	// player merely cannot afford are not errors; those players sit the
	// round out with a skip result instead.
	ErrInvalidBet = errors.New("game: invalid bet")

	// ErrInvalidAction indicates a strategy returned an action outside the
	// snapshot's allowed set. That signals a broken strategy rather than a
	// losing play, so the round fails instead of coercing the action.
	ErrInvalidAction = errors.New("game: invalid action")
)
