package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10
)

// liveMessage is one frame of the live feed.
type liveMessage struct {
	Type      string   `json:"type"` // "state"
	Payload   stateRes `json:"payload"`
	Timestamp int64    `json:"timestamp"`
}

func (s *Server) upgrader() websocket.Upgrader {
	origin := s.cfg.Server.ClientOrigin
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			o := r.Header.Get("Origin")
			return o == "" || o == origin
		},
	}
}

// handleLive streams the game's state: the current one on connect, then
// every committed change. The feed is read-only; client frames are discarded.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// subscribe before loading so no commit falls in between
	updates, cancel := s.games.Subscribe(id)
	defer cancel()

	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, r, err)
		return
	}

	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug().Err(err).Str("game", id).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	// reader: handles pongs and notices when the client goes away
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(livePongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(st stateRes) error {
		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
		return conn.WriteJSON(liveMessage{Type: "state", Payload: st, Timestamp: time.Now().Unix()})
	}
	if err := send(publicState(g)); err != nil {
		return
	}

	ping := time.NewTicker(livePingPeriod)
	defer ping.Stop()
	s.log.Debug().Str("game", id).Msg("live client connected")

	for {
		select {
		case st, ok := <-updates:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"),
					time.Now().Add(liveWriteWait))
				return
			}
			if err := send(publicState(st)); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}
		case <-gone:
			s.log.Debug().Str("game", id).Msg("live client left")
			return
		}
	}
}
