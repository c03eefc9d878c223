package db

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store wraps a gorm connection with the entity-store and event-log
// operations. A Store built inside Transaction shares that transaction.
type Store struct {
	conn *gorm.DB
}

func NewStore(conn *gorm.DB) *Store {
	return &Store{conn: conn}
}

// Transaction runs fn against a transaction-scoped Store. The whole unit
// commits or rolls back together.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{conn: tx})
	})
	return translate(err)
}

// LockGame takes a row lock on the game for the duration of the enclosing
// transaction, serializing read-validate-write sequences across processes.
// Games other than this one are unaffected.
func (s *Store) LockGame(ctx context.Context, gameID uuid.UUID) error {
	var game Game
	err := s.conn.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&game, "id = ?", gameID).Error
	return translate(err)
}

// Ping verifies the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return Ping(ctx, s.conn)
}
