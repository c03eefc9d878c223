package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

func nowFunc() time.Time {
	return time.Now().UTC()
}

type AddPlayerParams struct {
	Name   string
	Images []string
}

// AddPlayer adds a player to a game's roster. Roster assembly closes at
// game start, so the insert races against Start for the game row lock.
func (s *Store) AddPlayer(ctx context.Context, gameID uuid.UUID, p AddPlayerParams) (*Player, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrConstraintViolation)
	}
	if err := validateImages("images", p.Images); err != nil {
		return nil, err
	}
	player := Player{
		GameID: gameID,
		Name:   p.Name,
		Images: append([]string{}, p.Images...),
	}
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.LockGame(ctx, gameID); err != nil {
			return err
		}
		var game Game
		if err := tx.conn.First(&game, "id = ?", gameID).Error; err != nil {
			return err
		}
		if game.Started() {
			return fmt.Errorf("%w: roster is closed once the game has started", ErrConstraintViolation)
		}
		return tx.conn.Create(&player).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (s *Store) GetPlayer(ctx context.Context, id int64) (*Player, error) {
	var player Player
	if err := s.conn.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &player, nil
}

func (s *Store) ListPlayers(ctx context.Context, gameID uuid.UUID) ([]Player, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	var players []Player
	err := s.conn.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id").
		Find(&players).Error
	if err != nil {
		return nil, translate(err)
	}
	return players, nil
}
