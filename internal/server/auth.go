package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNoToken = errors.New("no session token")

type sessionHandler func(w http.ResponseWriter, r *http.Request, id string, session *mines.Session)

// sessionToken looks for the token in the Authorization header, then the
// token cookie, then the token query parameter. Browsers cannot set headers
// on WebSocket handshakes, hence the last two.
func sessionToken(r *http.Request) (string, error) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok {
			return "", errors.New("unsupported authorization scheme")
		}
		return token, nil
	}
	if cookie, err := r.Cookie(config.TokenCookie); err == nil {
		return cookie.Value, nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", ErrNoToken
}

func sessionPath(id string) string {
	return "/v1/game/" + id
}

// withSession rejects requests whose token does not belong to the session
// named in the path.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		token, err := sessionToken(r)
		if err != nil {
			s.sendJSON(w, http.StatusUnauthorized, errorReply{err.Error()})
			return
		}
		claims, err := s.jwt.ParseSessionClaims(token)
		if err != nil {
			s.log.WithField("session_id", id).Debug("invalid token: ", err)
			s.cookies.Clear(w, sessionPath(id))
			s.sendJSON(w, http.StatusUnauthorized, errorReply{"invalid session token"})
			return
		}
		if claims.SessionId != id {
			s.sendJSON(w, http.StatusUnauthorized, errorReply{"token does not match session"})
			return
		}
		session, ok := s.registry.Get(id)
		if !ok {
			s.sendJSON(w, http.StatusNotFound, errorReply{"session not found"})
			return
		}
		h(w, r, id, session)
	}
}
