package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Game is one gift-exchange session. PlayerID and PresentID are the
// materialized turn pointers: whose turn it is and which present is in play.
// A nil PlayerID on a started game means the game has finished.
type Game struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Images    pq.StringArray `gorm:"type:text[];not null" json:"images"`
	Users     datatypes.JSON `gorm:"type:jsonb;not null" json:"users"`
	PlayerID  *int64         `json:"player_id,omitempty"`
	PresentID *int64         `json:"present_id,omitempty"`
	StartedAt *time.Time     `json:"started_at,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
	Players   []Player       `json:"-"`
	Presents  []Present      `json:"-"`
}

func (g *Game) Started() bool {
	return g.StartedAt != nil
}

func (g *Game) Finished() bool {
	return g.StartedAt != nil && g.PlayerID == nil
}

type Player struct {
	ID        int64          `gorm:"primaryKey" json:"id"`
	GameID    uuid.UUID      `gorm:"type:uuid;index;not null" json:"game_id"`
	Name      string         `gorm:"not null" json:"name"`
	Images    pq.StringArray `gorm:"type:text[];not null" json:"images"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

type Present struct {
	ID              int64          `gorm:"primaryKey" json:"id"`
	GameID          uuid.UUID      `gorm:"type:uuid;index;not null" json:"game_id"`
	Name            string         `gorm:"not null" json:"name"`
	WrappedImages   pq.StringArray `gorm:"type:text[];not null" json:"wrapped_images"`
	UnwrappedImages pq.StringArray `gorm:"type:text[];not null" json:"unwrapped_images"`
	PlayerID        *int64         `json:"player_id,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

// Held reports whether the present currently has a holder.
func (p *Present) Held() bool {
	return p.PlayerID != nil
}

// PlayEvent is one committed transition in a game's append-only log.
// FromPlayerID/FromPresentID are set together on steal events (the prior
// holder and the present taken from them) and never one without the other.
type PlayEvent struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	GameID        uuid.UUID `gorm:"type:uuid;index;not null" json:"game_id"`
	PlayerID      int64     `gorm:"not null" json:"player_id"`
	PresentID     *int64    `json:"present_id,omitempty"`
	FromPlayerID  *int64    `json:"from_player_id,omitempty"`
	FromPresentID *int64    `json:"from_present_id,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

// Steal reports whether the event records a present changing holders.
func (e *PlayEvent) Steal() bool {
	return e.FromPlayerID != nil && e.FromPresentID != nil
}
