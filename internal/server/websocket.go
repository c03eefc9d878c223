package server

import (
	"log"
	"net/http"

	"gift-swap/internal/bus"

	"github.com/gorilla/websocket"
)

// handleStream upgrades the connection and relays the game's committed
// events from the moment of subscription. Spectators wanting history call
// the events endpoint first, then attach here.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	gameID, ok := gameIDFromPath(w, r)
	if !ok {
		return
	}
	if _, err := s.store.GetGame(r.Context(), gameID); err != nil {
		apiError(w, err)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	log.Printf("ws connected game_id=%s remote=%s", gameID, r.RemoteAddr)

	sub := s.bus.Subscribe(gameID)
	go s.writeStream(conn, sub)
	go s.readStream(conn, sub)
}

func (s *Server) writeStream(conn *websocket.Conn, sub *bus.Subscription) {
	defer conn.Close()
	for event := range sub.C() {
		if err := conn.WriteJSON(event); err != nil {
			sub.Close()
			return
		}
	}
}

// readStream drains the connection so close frames are processed; the
// first read error means the subscriber is gone.
func (s *Server) readStream(conn *websocket.Conn, sub *bus.Subscription) {
	defer sub.Close()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("ws disconnected error=%v", err)
			return
		}
	}
}
