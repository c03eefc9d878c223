package rules

import "errors"

var (
	// ErrIllegalMove rejects an action that is invalid against the current
	// game state: wrong turn, present already held or unheld, steal-chain
	// cap reached, or a finished game.
	ErrIllegalMove = errors.New("illegal move")

	// ErrAlreadyStarted rejects starting a game twice.
	ErrAlreadyStarted = errors.New("game already started")

	// ErrNotStarted rejects play actions before the game starts.
	ErrNotStarted = errors.New("game not started")
)
