package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var errConnClosed = errors.New("connection closed")

// wsMessage is everything the server pushes to a WebSocket client. Exactly
// one of the payload fields is set.
type wsMessage struct {
	Type   string          `json:"type"`
	Event  *mines.Event    `json:"event,omitempty"`
	Result *commandResult  `json:"result,omitempty"`
	Error  *batchError     `json:"error,omitempty"`
	Game   *mines.Snapshot `json:"game,omitempty"`
}

const wsOutboxSize = 16

// handleConnectWs upgrades to a WebSocket that accepts the batch command
// syntax in text messages and replies with one result message per command.
// Session events (timer ticks, game over, victory) are pushed as they happen.
func (s *Server) handleConnectWs(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
	detach, ok := s.registry.attach(id)
	if !ok {
		s.sendJSON(w, http.StatusNotFound, errorReply{"session not found"})
		return
	}
	defer detach()

	conn, err := s.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("upgrade: ", err)
		return
	}
	log := s.log.WithField("session_id", id)
	log.Debug("ws connected")

	out := make(chan wsMessage, wsOutboxSize)
	unsubscribe := session.Subscribe(func(e mines.Event) {
		select {
		case out <- wsMessage{Type: "event", Event: &e}:
		default:
			log.Debug("ws outbox full, event dropped")
		}
	})
	defer unsubscribe()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return wsWriter(ctx, conn, out)
	})
	g.Go(func() error {
		return wsReader(ctx, conn, session, out, log)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, errConnClosed) {
		log.Warn("ws: ", err)
	}
	log.Debug("ws disconnected")
}

func wsWriter(ctx context.Context, conn *websocket.Conn, out <-chan wsMessage) error {
	defer conn.Close()
	for {
		select {
		case <-ctx.Done():
			conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
			return nil
		case msg := <-out:
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		}
	}
}

func wsReader(
	ctx context.Context,
	conn *websocket.Conn,
	session *mines.Session,
	out chan<- wsMessage,
	log *logrus.Entry,
) error {
	send := func(msg wsMessage) error {
		select {
		case out <- msg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	snap := session.Snapshot()
	if err := send(wsMessage{Type: "game", Game: &snap}); err != nil {
		return err
	}
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(
				err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				return errConnClosed
			}
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)
		cmds, berr := parseBatch(text, snap.Rows, snap.Columns)
		if berr != nil {
			if err := send(wsMessage{Type: "error", Error: berr}); err != nil {
				return err
			}
			continue
		}
		results, err := runBatch(session, cmds)
		if err != nil {
			return err
		}
		for _, res := range results {
			if err := send(wsMessage{Type: "result", Result: &res}); err != nil {
				return err
			}
		}
	}
}
