package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
)

type Server struct {
	log      *logrus.Logger
	cfg      *config.Config
	registry *Registry
	jwt      *config.JWT
	cookies  *config.Cookies
	ws       *config.WebSocket
	dec      *schema.Decoder
}

func New(log *logrus.Logger, cfg *config.Config) *Server {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return &Server{
		log:      log,
		cfg:      cfg,
		registry: NewRegistry(log, cfg.Sessions.TTL),
		jwt:      config.NewJWT(cfg.JWT),
		cookies:  config.NewCookies(*cfg),
		ws:       config.NewWebSocket(cfg.AllowedOrigins),
		dec:      dec,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/status", s.handleStatus)

	mux.HandleFunc("POST /v1/game", s.handleNewGame)
	mux.HandleFunc("GET /v1/game/{id}", s.withSession(s.handleGetGame))
	mux.HandleFunc("POST /v1/game/{id}/reveal", s.withSession(s.handleReveal))
	mux.HandleFunc("POST /v1/game/{id}/flag", s.withSession(s.handleFlag))
	mux.HandleFunc("POST /v1/game/{id}/restart", s.withSession(s.handleRestart))
	mux.HandleFunc("POST /v1/game/{id}/batch", s.withSession(s.handleBatch))

	mux.HandleFunc("/v1/game/{id}/connect", s.withSession(s.handleConnectWs))

	return useMiddleware(mux,
		loggingMiddleware(s.log),
		corsMiddleware(s.cfg.AllowedOrigins),
	)
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.log.Error("unable to marshal response: ", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		s.log.Warn("unable to write response: ", err)
	}
}

type errorReply struct {
	Error string `json:"error"`
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.sendJSON(w, http.StatusBadRequest, errorReply{err.Error()})
}
