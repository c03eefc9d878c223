package rules

import (
	"fmt"

	"gift-swap/internal/db"
)

// The functions in this file are the pure half of the engine: they judge a
// proposed action against an in-memory snapshot and never touch storage.

func validateStart(game *db.Game, players []db.Player, presents []db.Present) error {
	if game.Started() {
		return ErrAlreadyStarted
	}
	if len(players) == 0 {
		return fmt.Errorf("%w: cannot start with an empty roster", ErrIllegalMove)
	}
	if len(presents) == 0 {
		return fmt.Errorf("%w: cannot start with an empty present pool", ErrIllegalMove)
	}
	return nil
}

func validateTurn(game *db.Game, playerID int64) error {
	if !game.Started() {
		return ErrNotStarted
	}
	if game.Finished() {
		return fmt.Errorf("%w: game is finished", ErrIllegalMove)
	}
	if *game.PlayerID != playerID {
		return fmt.Errorf("%w: not player %d's turn", ErrIllegalMove, playerID)
	}
	return nil
}

func validateDraw(game *db.Game, present *db.Present, playerID int64) error {
	if err := validateTurn(game, playerID); err != nil {
		return err
	}
	if present.GameID != game.ID {
		return db.ErrNotFound
	}
	if present.Held() {
		return fmt.Errorf("%w: present %d is already held", ErrIllegalMove, present.ID)
	}
	return nil
}

func validateSteal(game *db.Game, present *db.Present, playerID int64, stealCount int64, limit int) error {
	if err := validateTurn(game, playerID); err != nil {
		return err
	}
	if present.GameID != game.ID {
		return db.ErrNotFound
	}
	if !present.Held() {
		return fmt.Errorf("%w: present %d is not held by anyone", ErrIllegalMove, present.ID)
	}
	if *present.PlayerID == playerID {
		return fmt.Errorf("%w: cannot steal your own present", ErrIllegalMove)
	}
	if stealCount >= int64(limit) {
		return fmt.Errorf("%w: present %d has reached the steal limit of %d", ErrIllegalMove, present.ID, limit)
	}
	return nil
}

// nextPlayer advances the turn: the next roster member by ascending id,
// wrapping around. Roster order is insertion order, so this is stable.
// With an empty roster the turn stays with the acting player.
func nextPlayer(players []db.Player, current int64) int64 {
	for _, p := range players {
		if p.ID > current {
			return p.ID
		}
	}
	if len(players) == 0 {
		return current
	}
	return players[0].ID
}
