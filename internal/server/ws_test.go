package server

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thokas/zombie-survival/internal/game"
)

type wsIn struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	hello := readWS(t, conn)
	require.Equal(t, "hello", hello.Type)
	return conn
}

func readWS(t *testing.T, conn *websocket.Conn) wsIn {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var m wsIn
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func TestWSStreamsEventsThenResult(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dialWS(t, ts.URL)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"start","data":{"zombie_count":12,"survivor_count":3,"seed":5}}`)))

	var events []game.Event
	var res game.Result
	for {
		m := readWS(t, conn)
		if m.Type == "event" {
			var e game.Event
			require.NoError(t, json.Unmarshal(m.Data, &e))
			events = append(events, e)
			continue
		}
		require.Equal(t, "result", m.Type, string(m.Data))
		require.NoError(t, json.Unmarshal(m.Data, &res))
		break
	}

	require.NotEmpty(t, events)
	assert.Equal(t, game.EventSimulationStarted, events[0].Kind)
	assert.Equal(t, game.EventSimulationEnded, events[len(events)-1].Kind)

	risen := 0
	for _, e := range events {
		if e.Kind == game.EventZombieRisen {
			risen++
		}
	}
	assert.Equal(t, 12, risen)

	stored, err := s.store.Get(res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Kills, stored.Kills)
}

func TestWSStartWithoutDataUsesDefaults(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts.URL)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"start"}`)))

	for {
		m := readWS(t, conn)
		if m.Type == "event" {
			continue
		}
		require.Equal(t, "result", m.Type)
		var res game.Result
		require.NoError(t, json.Unmarshal(m.Data, &res))
		assert.Equal(t, 20, res.InitialZombies)
		return
	}
}

func TestWSErrors(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts.URL)

	tests := []struct {
		in   string
		want string
	}{
		{`{"type":"start","data":{"zombie_count":0}}`, "zombie_count must be greater than 0"},
		{`{"type":"start","data":[1,2]}`, `"data" must be a settings object`},
		{`{"type":"dance"}`, "unknown message type dance"},
		{`{"kind":"start"}`, `message needs a string "type"`},
	}
	for _, tt := range tests {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.in)))
		m := readWS(t, conn)
		require.Equal(t, "error", m.Type, tt.in)
		var msg string
		require.NoError(t, json.Unmarshal(m.Data, &msg))
		assert.Equal(t, tt.want, msg)
	}
}

func TestWSPing(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dialWS(t, ts.URL)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	assert.Equal(t, "pong", readWS(t, conn).Type)
}
