package server

import (
	"context"
	"net/http"

	"gift-swap/internal/bus"
	"gift-swap/internal/db"

	"github.com/google/uuid"
)

// Store is the slice of the entity store and event log the handlers need.
type Store interface {
	CreateGame(ctx context.Context, p db.CreateGameParams) (*db.Game, error)
	GetGame(ctx context.Context, id uuid.UUID) (*db.Game, error)
	ListGames(ctx context.Context, userKey string) ([]db.Game, error)
	State(ctx context.Context, gameID uuid.UUID) (*db.GameState, error)
	AddPlayer(ctx context.Context, gameID uuid.UUID, p db.AddPlayerParams) (*db.Player, error)
	ListPlayers(ctx context.Context, gameID uuid.UUID) ([]db.Player, error)
	AddPresent(ctx context.Context, gameID uuid.UUID, p db.AddPresentParams) (*db.Present, error)
	ListPresents(ctx context.Context, gameID uuid.UUID) ([]db.Present, error)
	Events(ctx context.Context, gameID uuid.UUID) ([]db.PlayEvent, error)
	Ping(ctx context.Context) error
}

// Engine is the rule engine surface: every state transition goes through it.
type Engine interface {
	Start(ctx context.Context, gameID uuid.UUID) ([]db.PlayEvent, error)
	Draw(ctx context.Context, gameID uuid.UUID, playerID, presentID int64) ([]db.PlayEvent, error)
	Steal(ctx context.Context, gameID uuid.UUID, playerID, presentID int64) ([]db.PlayEvent, error)
}

type Server struct {
	store  Store
	engine Engine
	bus    *bus.Bus
}

func New(store Store, engine Engine, b *bus.Bus) *Server {
	return &Server{store: store, engine: engine, bus: b}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games", s.handleListGames)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("GET /api/games/{id}/state", s.handleGameState)
	mux.HandleFunc("GET /api/games/{id}/events", s.handleListEvents)
	mux.HandleFunc("POST /api/games/{id}/players", s.handleAddPlayer)
	mux.HandleFunc("GET /api/games/{id}/players", s.handleListPlayers)
	mux.HandleFunc("POST /api/games/{id}/presents", s.handleAddPresent)
	mux.HandleFunc("GET /api/games/{id}/presents", s.handleListPresents)
	mux.HandleFunc("POST /api/games/{id}/play", s.handlePlay)
	mux.HandleFunc("GET /ws/play/{id}", s.handleStream)
	return mux
}
