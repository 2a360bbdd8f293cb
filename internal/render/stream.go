package render

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Progress is one diagnostic update emitted while a search runs: the
// depth/iteration reached so far and an ASCII dump of the board driving
// that search, so a connected client can watch the decision unfold turn
// by turn instead of only seeing the final move.
type Progress struct {
	GameID    string `json:"game_id"`
	Turn      int    `json:"turn"`
	Depth     int    `json:"depth"`
	Direction string `json:"direction"`
	Score     int64  `json:"score"`
	Board     string `json:"board"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// subscriber is one connected diagnostic client for a single game. Sends
// are lossy and non-blocking: a slow reader drops frames rather than
// backing up the search goroutine that's publishing them.
type subscriber struct {
	ch chan Progress
}

// StreamServer fans out search progress to any number of connected
// diagnostic clients, one topic per game id. It is the inverse of the
// teacher's collectGameFrames: that pulled frames from the public
// engine's websocket, this pushes frames from our own search to
// whoever is watching.
type StreamServer struct {
	mu   sync.Mutex
	subs map[string][]*subscriber
}

// NewStreamServer returns an empty server ready to accept subscriptions
// and publish progress.
func NewStreamServer() *StreamServer {
	return &StreamServer{subs: make(map[string][]*subscriber)}
}

// Publish broadcasts a progress update to every subscriber currently
// watching p.GameID. Subscribers whose buffer is full are skipped.
func (s *StreamServer) Publish(p Progress) {
	s.mu.Lock()
	subs := s.subs[p.GameID]
	s.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- p:
		default:
			slog.Warn("render: dropped progress frame, subscriber buffer full", "game_id", p.GameID)
		}
	}
}

// ServeHTTP upgrades the request to a websocket and streams Progress
// frames for the gameID in the request's path value until the client
// disconnects. Register it behind a path like /debug/stream/{gameID}.
func (s *StreamServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("gameID")
	if gameID == "" {
		http.Error(w, "missing gameID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("render: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := &subscriber{ch: make(chan Progress, 16)}
	s.addSubscriber(gameID, sub)
	defer s.removeSubscriber(gameID, sub)

	for p := range sub.ch {
		if err := conn.WriteJSON(p); err != nil {
			return
		}
	}
}

func (s *StreamServer) addSubscriber(gameID string, sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[gameID] = append(s.subs[gameID], sub)
}

func (s *StreamServer) removeSubscriber(gameID string, sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.subs[gameID]
	for i, existing := range list {
		if existing == sub {
			s.subs[gameID] = append(list[:i], list[i+1:]...)
			close(sub.ch)
			break
		}
	}
	if len(s.subs[gameID]) == 0 {
		delete(s.subs, gameID)
	}
}
