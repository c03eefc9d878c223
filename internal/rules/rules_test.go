package rules

import (
	"errors"
	"testing"
	"time"

	"gift-swap/internal/db"

	"github.com/google/uuid"
)

func i64(v int64) *int64 {
	return &v
}

func testRoster(gameID uuid.UUID, ids ...int64) []db.Player {
	players := make([]db.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, db.Player{ID: id, GameID: gameID})
	}
	return players
}

func startedGame(gameID uuid.UUID, current int64) *db.Game {
	now := time.Now().UTC()
	return &db.Game{ID: gameID, StartedAt: &now, PlayerID: i64(current)}
}

func TestValidateStart(t *testing.T) {
	gameID := uuid.New()
	game := &db.Game{ID: gameID}
	players := testRoster(gameID, 1, 2)
	presents := []db.Present{{ID: 10, GameID: gameID}}

	if err := validateStart(game, players, presents); err != nil {
		t.Fatalf("expected start to be legal, got %v", err)
	}
	if err := validateStart(game, nil, presents); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move for empty roster, got %v", err)
	}
	if err := validateStart(game, players, nil); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move for empty pool, got %v", err)
	}
	if err := validateStart(startedGame(gameID, 1), players, presents); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected already started, got %v", err)
	}
}

func TestValidateDrawWrongTurn(t *testing.T) {
	gameID := uuid.New()
	game := startedGame(gameID, 2)
	present := &db.Present{ID: 10, GameID: gameID}

	err := validateDraw(game, present, 1)
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move when drawing out of turn, got %v", err)
	}
}

func TestValidateDrawBeforeStart(t *testing.T) {
	gameID := uuid.New()
	game := &db.Game{ID: gameID}
	present := &db.Present{ID: 10, GameID: gameID}

	if err := validateDraw(game, present, 1); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}
}

func TestValidateDrawHeldPresent(t *testing.T) {
	gameID := uuid.New()
	game := startedGame(gameID, 1)
	present := &db.Present{ID: 10, GameID: gameID, PlayerID: i64(2)}

	if err := validateDraw(game, present, 1); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move for held present, got %v", err)
	}
}

func TestValidateDrawForeignPresent(t *testing.T) {
	gameID := uuid.New()
	game := startedGame(gameID, 1)
	present := &db.Present{ID: 10, GameID: uuid.New()}

	if err := validateDraw(game, present, 1); !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected not found for present from another game, got %v", err)
	}
}

func TestValidateDrawFinishedGame(t *testing.T) {
	gameID := uuid.New()
	now := time.Now().UTC()
	game := &db.Game{ID: gameID, StartedAt: &now}
	present := &db.Present{ID: 10, GameID: gameID}

	if err := validateDraw(game, present, 1); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move on finished game, got %v", err)
	}
}

func TestValidateSteal(t *testing.T) {
	gameID := uuid.New()
	game := startedGame(gameID, 1)

	unheld := &db.Present{ID: 10, GameID: gameID}
	if err := validateSteal(game, unheld, 1, 0, 3); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move for unheld present, got %v", err)
	}

	selfHeld := &db.Present{ID: 10, GameID: gameID, PlayerID: i64(1)}
	if err := validateSteal(game, selfHeld, 1, 0, 3); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move for self-held present, got %v", err)
	}

	held := &db.Present{ID: 10, GameID: gameID, PlayerID: i64(2)}
	if err := validateSteal(game, held, 1, 3, 3); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected illegal move at steal limit, got %v", err)
	}
	if err := validateSteal(game, held, 1, 2, 3); err != nil {
		t.Fatalf("expected steal under the limit to be legal, got %v", err)
	}
}

func TestNextPlayerWraps(t *testing.T) {
	gameID := uuid.New()
	players := testRoster(gameID, 3, 7, 11)

	if got := nextPlayer(players, 3); got != 7 {
		t.Fatalf("expected next player 7, got %d", got)
	}
	if got := nextPlayer(players, 11); got != 3 {
		t.Fatalf("expected wrap to player 3, got %d", got)
	}
}
