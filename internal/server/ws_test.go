package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func dialSession(t *testing.T, srv *httptest.Server, id, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/game/" + id + "/connect"
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestConnectWs(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	id, token := addSession(t, s, mines.Point{Row: 5, Col: 5})
	session, ok := s.registry.Get(id)
	require.True(t, ok)

	conn := dialSession(t, srv, id, token)

	msg := readMessage(t, conn)
	require.Equal(t, "game", msg.Type)
	require.NotNil(t, msg.Game)
	assert.Equal(t, mines.Playing, msg.Game.State)

	session.Tick()
	msg = readMessage(t, conn)
	require.Equal(t, "event", msg.Type)
	assert.Equal(t, mines.Event{Kind: mines.Ticked, Elapsed: 1}, *msg.Event)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 0 0\no 4 4")))
	msg = readMessage(t, conn)
	require.Equal(t, "result", msg.Type)
	assert.Equal(t, "f 0 0", msg.Result.Command)
	assert.True(t, msg.Result.Flag.Flagged)
	msg = readMessage(t, conn)
	require.Equal(t, "result", msg.Type)
	assert.Equal(t, []mines.Cell{{Point: mines.Point{Row: 4, Col: 4}, Status: 1}}, msg.Result.Reveal.Delta)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 4 4\nboom")))
	msg = readMessage(t, conn)
	require.Equal(t, "error", msg.Type)
	assert.Equal(t, &batchError{Line: 1, Error: "unknown command"}, msg.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 5 5")))
	var kinds []mines.EventKind
	for range 2 {
		msg = readMessage(t, conn)
		require.Equal(t, "event", msg.Type)
		kinds = append(kinds, msg.Event.Kind)
	}
	assert.Equal(t, []mines.EventKind{mines.GameOver, mines.TimerStopped}, kinds)
	msg = readMessage(t, conn)
	require.Equal(t, "result", msg.Type)
	assert.True(t, msg.Result.Reveal.Lost)
	assert.Equal(t, mines.Lost, msg.Result.Game.State)
}

func TestConnectWsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	id, _ := addSession(t, s, mines.Point{Row: 5, Col: 5})
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/game/" + id + "/connect"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnectWsHoldsSession(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)

	id, token := addSession(t, s, mines.Point{Row: 5, Col: 5})
	conns := func() int {
		s.registry.mu.Lock()
		defer s.registry.mu.Unlock()
		return s.registry.sessions[id].conns
	}

	conn := dialSession(t, srv, id, token)
	assert.Equal(t, 1, conns())

	require.NoError(t, conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	))
	assert.Eventually(t, func() bool { return conns() == 0 }, 5*time.Second, 10*time.Millisecond)
}
