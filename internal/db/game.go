package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateGameParams struct {
	Name   string
	Images []string
	Users  datatypes.JSON
}

// CreateGame inserts a new game in the not-started state. The users blob is
// stored opaquely; ownership of its contents belongs to the authorization
// collaborator.
func (s *Store) CreateGame(ctx context.Context, p CreateGameParams) (*Game, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrConstraintViolation)
	}
	if err := validateImages("images", p.Images); err != nil {
		return nil, err
	}
	users := p.Users
	if len(users) == 0 {
		users = datatypes.JSON([]byte(`{}`))
	}
	game := Game{
		ID:     uuid.New(),
		Name:   p.Name,
		Images: append([]string{}, p.Images...),
		Users:  users,
	}
	if err := s.conn.WithContext(ctx).Create(&game).Error; err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

func (s *Store) GetGame(ctx context.Context, id uuid.UUID) (*Game, error) {
	var game Game
	if err := s.conn.WithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &game, nil
}

// ListGames returns the games whose users blob contains the given key.
func (s *Store) ListGames(ctx context.Context, userKey string) ([]Game, error) {
	var games []Game
	err := s.conn.WithContext(ctx).
		Where(datatypes.JSONQuery("users").HasKey(userKey)).
		Order("created_at").
		Find(&games).Error
	if err != nil {
		return nil, translate(err)
	}
	return games, nil
}

// GameState is a consistent snapshot of one game: the row itself plus the
// full roster and present pool, read inside a single transaction so holder
// assignments and turn pointers can never mix freshness.
type GameState struct {
	Game     Game
	Players  []Player
	Presents []Present
}

func (s *Store) State(ctx context.Context, gameID uuid.UUID) (*GameState, error) {
	var state GameState
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.conn.First(&state.Game, "id = ?", gameID).Error; err != nil {
			return err
		}
		if err := tx.conn.Where("game_id = ?", gameID).Order("id").Find(&state.Players).Error; err != nil {
			return err
		}
		return tx.conn.Where("game_id = ?", gameID).Order("id").Find(&state.Presents).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &state, nil
}

// MarkStarted stamps started_at and seats the first player. The caller is
// responsible for having validated the not-started precondition under lock.
func (s *Store) MarkStarted(ctx context.Context, gameID uuid.UUID, firstPlayerID int64) error {
	err := s.conn.WithContext(ctx).Model(&Game{}).
		Where("id = ?", gameID).
		Updates(map[string]any{
			"started_at": nowFunc(),
			"player_id":  firstPlayerID,
		}).Error
	return translate(err)
}

// SetTurn updates the materialized turn pointers. Passing nil for both
// marks the game finished.
func (s *Store) SetTurn(ctx context.Context, gameID uuid.UUID, playerID, presentID *int64) error {
	err := s.conn.WithContext(ctx).Model(&Game{}).
		Where("id = ?", gameID).
		Updates(map[string]any{
			"player_id":  playerID,
			"present_id": presentID,
		}).Error
	return translate(err)
}
