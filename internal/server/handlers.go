package server

import (
	"encoding/json"
	"log"
	"net/http"

	"gift-swap/internal/db"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func gameIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid game id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		log.Printf("health check failed error=%v", err)
		writeError(w, http.StatusInternalServerError, "degraded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string          `json:"name"`
		Images []string        `json:"images"`
		Users  json.RawMessage `json:"users"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	game, err := s.store.CreateGame(r.Context(), db.CreateGameParams{
		Name:   req.Name,
		Images: req.Images,
		Users:  datatypes.JSON(req.Users),
	})
	if err != nil {
		apiError(w, err)
		return
	}
	log.Printf("game created game_id=%s name=%q", game.ID, game.Name)
	writeJSON(w, http.StatusCreated, game)
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	userKey := r.URL.Query().Get("user")
	if userKey == "" {
		writeError(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	games, err := s.store.ListGames(r.Context(), userKey)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	game, err := s.store.GetGame(r.Context(), gameID)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	state, err := s.store.State(r.Context(), gameID)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"game":     state.Game,
		"players":  state.Players,
		"presents": state.Presents,
		"started":  state.Game.Started(),
		"finished": state.Game.Finished(),
	})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	events, err := s.store.Events(r.Context(), gameID)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	var req struct {
		Name   string   `json:"name"`
		Images []string `json:"images"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	player, err := s.store.AddPlayer(r.Context(), gameID, db.AddPlayerParams{
		Name:   req.Name,
		Images: req.Images,
	})
	if err != nil {
		apiError(w, err)
		return
	}
	log.Printf("player joined game_id=%s player_id=%d name=%q", gameID, player.ID, player.Name)
	writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	players, err := s.store.ListPlayers(r.Context(), gameID)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleAddPresent(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	var req struct {
		Name            string   `json:"name"`
		WrappedImages   []string `json:"wrapped_images"`
		UnwrappedImages []string `json:"unwrapped_images"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	present, err := s.store.AddPresent(r.Context(), gameID, db.AddPresentParams{
		Name:            req.Name,
		WrappedImages:   req.WrappedImages,
		UnwrappedImages: req.UnwrappedImages,
	})
	if err != nil {
		apiError(w, err)
		return
	}
	log.Printf("present added game_id=%s present_id=%d name=%q", gameID, present.ID, present.Name)
	writeJSON(w, http.StatusCreated, present)
}

func (s *Server) handleListPresents(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	presents, err := s.store.ListPresents(r.Context(), gameID)
	if err != nil {
		apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presents)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	var req struct {
		Action    string `json:"action"`
		PlayerID  int64  `json:"player_id"`
		PresentID int64  `json:"present_id"`
	}
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var events []db.PlayEvent
	var err error
	switch req.Action {
	case "start":
		events, err = s.engine.Start(r.Context(), gameID)
	case "draw":
		events, err = s.engine.Draw(r.Context(), gameID, req.PlayerID, req.PresentID)
	case "steal":
		events, err = s.engine.Steal(r.Context(), gameID, req.PlayerID, req.PresentID)
	default:
		writeError(w, http.StatusBadRequest, "action must be one of start, draw, steal")
		return
	}
	if err != nil {
		log.Printf("action rejected game_id=%s action=%s player_id=%d error=%v",
			gameID, req.Action, req.PlayerID, err)
		apiError(w, err)
		return
	}
	log.Printf("action committed game_id=%s action=%s player_id=%d events=%d",
		gameID, req.Action, req.PlayerID, len(events))
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}
