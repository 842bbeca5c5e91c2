package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	apperrors "github.com/Thokas/zombie-survival/internal/errors"
	"github.com/Thokas/zombie-survival/internal/game"
)

const (
	wsWriteWait    = 10 * time.Second
	wsReadLimit    = 64 << 10
	wsOutboxLength = 256
)

// wsMsg is the envelope of every websocket message in both directions.
type wsMsg struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// wsClient owns one connection. Only writeLoop writes to conn.
type wsClient struct {
	id   string
	conn *websocket.Conn
	out  chan wsMsg
	dead chan struct{} // closed when writeLoop stops
}

// send queues m, or drops it once the writer is gone.
func (c *wsClient) send(m wsMsg) bool {
	select {
	case c.out <- m:
		return true
	case <-c.dead:
		return false
	}
}

func (s *Server) writeLoop(c *wsClient) {
	defer close(c.dead)
	for m := range c.out {
		_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := c.conn.WriteJSON(m); err != nil {
			s.logger.Warn("ws: write error", "id", c.id, "err", err)
			return
		}
	}
}

// GET /ws
//
// Client messages:
//
//	{"type":"start","data":{...settings}}  run a simulation, streaming events
//	{"type":"ping"}                        answered with "pong"
//
// Server messages: "hello", "event", "result", "error", "pong".
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws: upgrade failed", "from", r.RemoteAddr, "err", err)
		return
	}
	c := &wsClient{
		id:   "c_" + uuid.NewString()[:8],
		conn: conn,
		out:  make(chan wsMsg, wsOutboxLength),
		dead: make(chan struct{}),
	}
	s.logger.Info("ws: connect", "id", c.id, "from", r.RemoteAddr)
	go s.writeLoop(c)
	defer func() {
		close(c.out)
		<-c.dead
		_ = conn.Close()
		s.logger.Info("ws: closed", "id", c.id)
	}()

	c.send(wsMsg{Type: "hello", Data: map[string]string{"id": c.id}})
	conn.SetReadLimit(wsReadLimit)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("ws: read error", "id", c.id, "err", err)
			}
			return
		}
		msgType, err := jsonparser.GetString(data, "type")
		if err != nil {
			c.send(wsMsg{Type: "error", Data: "message needs a string \"type\""})
			continue
		}
		s.logger.Debug("ws: recv", "id", c.id, "type", msgType)

		switch msgType {
		case "ping":
			c.send(wsMsg{Type: "pong"})
		case "start":
			s.wsStart(c, r, data)
		default:
			c.send(wsMsg{Type: "error", Data: "unknown message type " + msgType})
		}
	}
}

// wsStart runs a simulation on the reader goroutine, so one connection
// runs at most one simulation at a time.
func (s *Server) wsStart(c *wsClient, r *http.Request, data []byte) {
	var raw []byte
	payload, dataType, _, err := jsonparser.Get(data, "data")
	switch {
	case errors.Is(err, jsonparser.KeyPathNotFoundError), dataType == jsonparser.Null:
	case err != nil || dataType != jsonparser.Object:
		c.send(wsMsg{Type: "error", Data: "\"data\" must be a settings object"})
		return
	default:
		raw = payload
	}

	settings, err := decodeSettings(raw)
	if err != nil {
		c.send(wsMsg{Type: "error", Data: errorMessage(err)})
		return
	}
	sink := game.SinkFunc(func(e game.Event) {
		c.send(wsMsg{Type: "event", Data: e})
	})
	res, err := s.simulate(r.Context(), settings, sink)
	if err != nil {
		c.send(wsMsg{Type: "error", Data: errorMessage(err)})
		return
	}
	c.send(wsMsg{Type: "result", Data: res})
}

func errorMessage(err error) string {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Code != apperrors.CodeInternal {
		return appErr.Message
	}
	return "internal error"
}
