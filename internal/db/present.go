package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type AddPresentParams struct {
	Name            string
	WrappedImages   []string
	UnwrappedImages []string
}

// AddPresent adds an unheld present to a game's pool before the game starts.
func (s *Store) AddPresent(ctx context.Context, gameID uuid.UUID, p AddPresentParams) (*Present, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrConstraintViolation)
	}
	if err := validateImages("wrapped_images", p.WrappedImages); err != nil {
		return nil, err
	}
	if err := validateImages("unwrapped_images", p.UnwrappedImages); err != nil {
		return nil, err
	}
	present := Present{
		GameID:          gameID,
		Name:            p.Name,
		WrappedImages:   append([]string{}, p.WrappedImages...),
		UnwrappedImages: append([]string{}, p.UnwrappedImages...),
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
			return fmt.Errorf("%w: present pool is closed once the game has started", ErrConstraintViolation)
		}
		return tx.conn.Create(&present).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &present, nil
}

func (s *Store) GetPresent(ctx context.Context, id int64) (*Present, error) {
	var present Present
	if err := s.conn.WithContext(ctx).First(&present, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &present, nil
}

func (s *Store) ListPresents(ctx context.Context, gameID uuid.UUID) ([]Present, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	var presents []Present
	err := s.conn.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id").
		Find(&presents).Error
	if err != nil {
		return nil, translate(err)
	}
	return presents, nil
}

// SetPresentHolder reassigns (or clears) a present's holder.
func (s *Store) SetPresentHolder(ctx context.Context, presentID int64, playerID *int64) error {
	err := s.conn.WithContext(ctx).Model(&Present{}).
		Where("id = ?", presentID).
		Update("player_id", playerID).Error
	return translate(err)
}

// CountUnheldPresents returns how many presents in the game have no holder.
func (s *Store) CountUnheldPresents(ctx context.Context, gameID uuid.UUID) (int64, error) {
	var count int64
	err := s.conn.WithContext(ctx).Model(&Present{}).
		Where("game_id = ? AND player_id IS NULL", gameID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
