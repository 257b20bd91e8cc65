package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type status struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, status{"ok", s.registry.Len()})
}

type NewGameParams struct {
	AutoRestart bool `schema:"auto_restart"`
}

type newGameReply struct {
	SessionId string `json:"session_id"`
	Token     string `json:"token"`
	mines.Snapshot
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := s.dec.Decode(&params, r.URL.Query()); err != nil {
		s.badRequest(w, err)
		return
	}
	var opts []mines.Option
	if params.AutoRestart {
		opts = append(opts, mines.WithAutoRestart())
	}
	id, session, err := s.registry.Create(opts...)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.log.Error("unable to create session: ", err)
		return
	}
	claims := s.jwt.NewSessionClaims(id)
	token, err := s.jwt.Sign(claims)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.log.Error("unable to sign session token: ", err)
		return
	}
	s.cookies.Refresh(w, token, sessionPath(id), claims.ExpiresAt.Time)
	s.sendJSON(w, http.StatusCreated, newGameReply{
		SessionId: id,
		Token:     token,
		Snapshot:  session.Snapshot(),
	})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
	s.sendJSON(w, http.StatusOK, session.Snapshot())
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func (s *Server) handleCellCommand(op string) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
		var pos PosParams
		if err := s.dec.Decode(&pos, r.URL.Query()); err != nil {
			s.badRequest(w, err)
			return
		}
		res, err := command{op: op, row: pos.Row, col: pos.Col}.execute(session)
		if errors.Is(err, mines.ErrOutOfBounds) {
			s.badRequest(w, err)
			return
		} else if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			s.log.Error(err)
			return
		}
		s.log.WithFields(logrus.Fields{
			"session_id": id,
			"command":    res.Command,
			"state":      res.Game.State,
		}).Debug("command executed")
		s.sendJSON(w, http.StatusOK, res)
	}
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
	s.handleCellCommand("o")(w, r, id, session)
}

func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
	s.handleCellCommand("f")(w, r, id, session)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
	s.sendJSON(w, http.StatusOK, session.Restart())
}

type batchReply struct {
	Results []commandResult `json:"results"`
	Game    mines.Snapshot  `json:"game"`
}

const maxBatchSize = 1 << 16

// Accepts newline-separated commands transferred via body of following syntax:
//
//	o row col // reveal the cell at row:col
//	f row col // toggle the flag at row:col
//	n         // start a new game
//	g         // report game state
//
// Commands are interpreted in the order they are listed. If any command
// ends the game, interpretation stops and game state is returned immediately.
// If any command is malformed, nothing is executed and the response has a
// status of [http.StatusBadRequest] and a payload with the command's line
// number and an error message.
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, id string, session *mines.Session) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchSize))
	if err != nil {
		s.badRequest(w, err)
		return
	}
	snap := session.Snapshot()
	cmds, berr := parseBatch(string(body), snap.Rows, snap.Columns)
	if berr != nil {
		s.sendJSON(w, http.StatusBadRequest, berr)
		return
	}
	start := time.Now()
	results, err := runBatch(session, cmds)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.log.Error(err)
		return
	}
	s.log.WithFields(logrus.Fields{
		"session_id": id,
		"commands":   len(results),
		"took":       time.Since(start),
	}).Debug("batch executed")
	s.sendJSON(w, http.StatusOK, batchReply{results, session.Snapshot()})
}
