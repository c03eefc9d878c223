package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gift-swap/internal/db"

	"github.com/google/uuid"
)

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// stubStore serves a single game and canned collections.
type stubStore struct {
	game     *db.Game
	players  []db.Player
	presents []db.Present
	events   []db.PlayEvent
	pingErr  error
}

func (s *stubStore) found(id uuid.UUID) error {
	if s.game == nil || s.game.ID != id {
		return db.ErrNotFound
	}
	return nil
}

func (s *stubStore) CreateGame(_ context.Context, p db.CreateGameParams) (*db.Game, error) {
	if p.Name == "" {
		return nil, db.ErrConstraintViolation
	}
	game := &db.Game{ID: uuid.New(), Name: p.Name, CreatedAt: time.Now().UTC()}
	s.game = game
	return game, nil
}

func (s *stubStore) GetGame(_ context.Context, id uuid.UUID) (*db.Game, error) {
	if err := s.found(id); err != nil {
		return nil, err
	}
	return s.game, nil
}

func (s *stubStore) ListGames(context.Context, string) ([]db.Game, error) {
	if s.game == nil {
		return nil, nil
	}
	return []db.Game{*s.game}, nil
}

func (s *stubStore) State(_ context.Context, gameID uuid.UUID) (*db.GameState, error) {
	if err := s.found(gameID); err != nil {
		return nil, err
	}
	return &db.GameState{Game: *s.game, Players: s.players, Presents: s.presents}, nil
}

func (s *stubStore) AddPlayer(_ context.Context, gameID uuid.UUID, p db.AddPlayerParams) (*db.Player, error) {
	if err := s.found(gameID); err != nil {
		return nil, err
	}
	player := db.Player{ID: int64(len(s.players) + 1), GameID: gameID, Name: p.Name}
	s.players = append(s.players, player)
	return &player, nil
}

func (s *stubStore) ListPlayers(_ context.Context, gameID uuid.UUID) ([]db.Player, error) {
	if err := s.found(gameID); err != nil {
		return nil, err
	}
	return s.players, nil
}

func (s *stubStore) AddPresent(_ context.Context, gameID uuid.UUID, p db.AddPresentParams) (*db.Present, error) {
	if err := s.found(gameID); err != nil {
		return nil, err
	}
	present := db.Present{ID: int64(len(s.presents) + 1), GameID: gameID, Name: p.Name}
	s.presents = append(s.presents, present)
	return &present, nil
}

func (s *stubStore) ListPresents(_ context.Context, gameID uuid.UUID) ([]db.Present, error) {
	if err := s.found(gameID); err != nil {
		return nil, err
	}
	return s.presents, nil
}

func (s *stubStore) Events(_ context.Context, gameID uuid.UUID) ([]db.PlayEvent, error) {
	if err := s.found(gameID); err != nil {
		return nil, err
	}
	return s.events, nil
}

func (s *stubStore) Ping(context.Context) error {
	return s.pingErr
}

// stubEngine returns canned events or a canned error for every action.
type stubEngine struct {
	events []db.PlayEvent
	err    error
}

func (e *stubEngine) Start(context.Context, uuid.UUID) ([]db.PlayEvent, error) {
	return e.events, e.err
}

func (e *stubEngine) Draw(context.Context, uuid.UUID, int64, int64) ([]db.PlayEvent, error) {
	return e.events, e.err
}

func (e *stubEngine) Steal(context.Context, uuid.UUID, int64, int64) ([]db.PlayEvent, error) {
	return e.events, e.err
}
