package http

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWS upgrades the connection and streams game events to the
// client. A team_id query parameter scopes team-addressed events
// (new_question carries that team's answered flag); connections without
// one, such as the admin dashboard or a lobby screen, receive only the
// broadcast events.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := s.game.Subscribe()
	defer cancel()

	done := make(chan struct{})

	// Reader goroutine: commands arrive over REST, so inbound frames
	// only matter for detecting the close.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.TeamID != "" && ev.TeamID != teamID {
				continue
			}
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
