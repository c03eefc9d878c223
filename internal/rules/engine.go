package rules

import (
	"context"
	"math/rand/v2"
	"sync"

	"gift-swap/internal/bus"
	"gift-swap/internal/db"

	"github.com/google/uuid"
)

// Storage is the slice of the entity store and event log the engine
// commits through. The transaction-scoped value handed to a Transaction
// closure sees that transaction's uncommitted writes.
type Storage interface {
	Transaction(ctx context.Context, fn func(tx Storage) error) error
	LockGame(ctx context.Context, gameID uuid.UUID) error
	State(ctx context.Context, gameID uuid.UUID) (*db.GameState, error)
	MarkStarted(ctx context.Context, gameID uuid.UUID, firstPlayerID int64) error
	AppendEvent(ctx context.Context, event *db.PlayEvent) error
	SetPresentHolder(ctx context.Context, presentID int64, playerID *int64) error
	CountUnheldPresents(ctx context.Context, gameID uuid.UUID) (int64, error)
	CountStealsOfPresent(ctx context.Context, gameID uuid.UUID, presentID int64) (int64, error)
	SetTurn(ctx context.Context, gameID uuid.UUID, playerID, presentID *int64) error
}

// storeAdapter lifts *db.Store into Storage, rewrapping the
// transaction-scoped store so closures stay on the same transaction.
type storeAdapter struct {
	*db.Store
}

func (a storeAdapter) Transaction(ctx context.Context, fn func(tx Storage) error) error {
	return a.Store.Transaction(ctx, func(tx *db.Store) error {
		return fn(storeAdapter{tx})
	})
}

// Engine validates proposed actions against the current game state and
// commits the resulting event plus state delta as one transaction. Each
// game has its own mutex, so the read-validate-write sequence is serial per
// game while unrelated games never contend. The bus publish happens after
// the transaction commits; a rejected action publishes nothing.
type Engine struct {
	store Storage
	bus   *bus.Bus
	cfg   Config

	mu    sync.Mutex
	locks map[uuid.UUID]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func NewEngine(store *db.Store, b *bus.Bus, cfg Config) (*Engine, error) {
	return newEngine(storeAdapter{store}, b, cfg)
}

func newEngine(store Storage, b *bus.Bus, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		store: store,
		bus:   b,
		cfg:   cfg,
		locks: make(map[uuid.UUID]*gameLock),
	}, nil
}

// lockGame serializes actions on one game. The entry is refcounted and
// dropped when the last holder releases it, so the map does not grow with
// every game ever played.
func (e *Engine) lockGame(gameID uuid.UUID) func() {
	e.mu.Lock()
	lock, ok := e.locks[gameID]
	if !ok {
		lock = &gameLock{}
		e.locks[gameID] = lock
	}
	lock.refs++
	e.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		e.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(e.locks, gameID)
		}
		e.mu.Unlock()
	}
}

// Start transitions a game from not-started to in-progress, seating the
// first player per the configured policy. The start marker event records
// the seat so replay stays deterministic under the random policy.
func (e *Engine) Start(ctx context.Context, gameID uuid.UUID) ([]db.PlayEvent, error) {
	defer e.lockGame(gameID)()

	var committed db.PlayEvent
	err := e.store.Transaction(ctx, func(tx Storage) error {
		if err := tx.LockGame(ctx, gameID); err != nil {
			return err
		}
		state, err := tx.State(ctx, gameID)
		if err != nil {
			return err
		}
		if err := validateStart(&state.Game, state.Players, state.Presents); err != nil {
			return err
		}
		first := e.firstPlayer(state.Players)
		if err := tx.MarkStarted(ctx, gameID, first); err != nil {
			return err
		}
		committed = db.PlayEvent{GameID: gameID, PlayerID: first}
		return tx.AppendEvent(ctx, &committed)
	})
	if err != nil {
		return nil, err
	}
	e.bus.Publish(gameID, committed)
	return []db.PlayEvent{committed}, nil
}

// Draw has the current player take an unheld present. If that was the last
// unheld present the game finishes in the same transaction, appending the
// player-only finish marker and clearing both turn pointers.
func (e *Engine) Draw(ctx context.Context, gameID uuid.UUID, playerID, presentID int64) ([]db.PlayEvent, error) {
	defer e.lockGame(gameID)()

	var committed []db.PlayEvent
	err := e.store.Transaction(ctx, func(tx Storage) error {
		if err := tx.LockGame(ctx, gameID); err != nil {
			return err
		}
		state, err := tx.State(ctx, gameID)
		if err != nil {
			return err
		}
		present, err := findPresent(state.Presents, presentID)
		if err != nil {
			return err
		}
		if err := validateDraw(&state.Game, present, playerID); err != nil {
			return err
		}

		event := db.PlayEvent{GameID: gameID, PlayerID: playerID, PresentID: &presentID}
		if err := tx.AppendEvent(ctx, &event); err != nil {
			return err
		}
		if err := tx.SetPresentHolder(ctx, presentID, &playerID); err != nil {
			return err
		}
		committed = append(committed, event)

		unheld, err := tx.CountUnheldPresents(ctx, gameID)
		if err != nil {
			return err
		}
		if unheld == 0 {
			finish := db.PlayEvent{GameID: gameID, PlayerID: playerID}
			if err := tx.AppendEvent(ctx, &finish); err != nil {
				return err
			}
			committed = append(committed, finish)
			return tx.SetTurn(ctx, gameID, nil, nil)
		}
		next := nextPlayer(state.Players, playerID)
		return tx.SetTurn(ctx, gameID, &next, &presentID)
	})
	if err != nil {
		return nil, err
	}
	e.bus.Publish(gameID, committed...)
	return committed, nil
}

// Steal has the current player take a present held by someone else. The
// event records full provenance: the prior holder and the present taken
// from them.
func (e *Engine) Steal(ctx context.Context, gameID uuid.UUID, playerID, presentID int64) ([]db.PlayEvent, error) {
	defer e.lockGame(gameID)()

	var committed db.PlayEvent
	err := e.store.Transaction(ctx, func(tx Storage) error {
		if err := tx.LockGame(ctx, gameID); err != nil {
			return err
		}
		state, err := tx.State(ctx, gameID)
		if err != nil {
			return err
		}
		present, err := findPresent(state.Presents, presentID)
		if err != nil {
			return err
		}
		stealCount, err := tx.CountStealsOfPresent(ctx, gameID, presentID)
		if err != nil {
			return err
		}
		if err := validateSteal(&state.Game, present, playerID, stealCount, e.cfg.StealLimit); err != nil {
			return err
		}

		fromPlayer := *present.PlayerID
		committed = db.PlayEvent{
			GameID:        gameID,
			PlayerID:      playerID,
			PresentID:     &presentID,
			FromPlayerID:  &fromPlayer,
			FromPresentID: &presentID,
		}
		if err := tx.AppendEvent(ctx, &committed); err != nil {
			return err
		}
		if err := tx.SetPresentHolder(ctx, presentID, &playerID); err != nil {
			return err
		}
		next := nextPlayer(state.Players, playerID)
		return tx.SetTurn(ctx, gameID, &next, &presentID)
	})
	if err != nil {
		return nil, err
	}
	e.bus.Publish(gameID, committed)
	return []db.PlayEvent{committed}, nil
}

func (e *Engine) firstPlayer(players []db.Player) int64 {
	if e.cfg.FirstPlayer == FirstPlayerRandom {
		return players[rand.IntN(len(players))].ID
	}
	return players[0].ID
}

func findPresent(presents []db.Present, presentID int64) (*db.Present, error) {
	for i := range presents {
		if presents[i].ID == presentID {
			return &presents[i], nil
		}
	}
	return nil, db.ErrNotFound
}
