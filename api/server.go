package api

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"

	"github.com/huyqng/battleship-server/history"
	"github.com/huyqng/battleship-server/token"
	"github.com/huyqng/battleship-server/util"
	"github.com/huyqng/battleship-server/ws"
)

type Server struct {
	config     *util.Config
	manager    *ws.Manager
	tokenMaker token.Maker
	recorder   history.Recorder
	validate   *validator.Validate
	handler    http.Handler
}

func NewServer(config *util.Config, manager *ws.Manager, maker token.Maker, recorder history.Recorder) *Server {
	server := &Server{
		config:     config,
		manager:    manager,
		tokenMaker: maker,
		recorder:   recorder,
		validate:   validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", server.TokenHandler)
	mux.HandleFunc("/ws", manager.ServeWS)
	mux.HandleFunc("/matches", server.MatchesHandler)
	mux.HandleFunc("/healthz", server.HealthHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: config.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server.handler = c.Handler(mux)

	return server
}

func (s *Server) Start() error {
	return http.ListenAndServe(fmt.Sprintf(":%v", s.config.Port), s.handler)
}
