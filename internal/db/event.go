package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AppendEvent inserts one immutable play event. There is no update or
// delete counterpart; the log only grows.
func (s *Store) AppendEvent(ctx context.Context, event *PlayEvent) error {
	if (event.FromPlayerID == nil) != (event.FromPresentID == nil) {
		return fmt.Errorf("%w: from_player_id and from_present_id must be set together", ErrConstraintViolation)
	}
	return translate(s.conn.WithContext(ctx).Create(event).Error)
}

// Events replays a game's log in commit order. The bigserial id is the
// ordering key; created_at alone can collide inside one transaction.
func (s *Store) Events(ctx context.Context, gameID uuid.UUID) ([]PlayEvent, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	var events []PlayEvent
	err := s.conn.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id").
		Find(&events).Error
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

// CountStealsOfPresent counts how many times a present has changed holders,
// which is what the steal-chain cap is measured against.
func (s *Store) CountStealsOfPresent(ctx context.Context, gameID uuid.UUID, presentID int64) (int64, error) {
	var count int64
	err := s.conn.WithContext(ctx).Model(&PlayEvent{}).
		Where("game_id = ? AND from_present_id = ?", gameID, presentID).
		Count(&count).Error
	if err != nil {
		return 0, translate(err)
	}
	return count, nil
}
