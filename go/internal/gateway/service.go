package gateway

import (
	"context"
	"net/http"

	"github.com/jv-albuquerque/cooldown/go/internal/board"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Service exposes the board over REST and streams it over websockets
type Service struct {
	board             Board
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	stateHandler      *StateHandler
}

type Config struct {
	ConnectionConfig ConnectionConfig
	AllowedOrigins   []string
}

func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		AllowedOrigins:   []string{"*"},
	}
}

func NewService(config Config, b Board) *Service {
	cm := NewConnectionManager(config.ConnectionConfig)
	return &Service{
		board:             b,
		connectionManager: cm,
		wsHandler:         NewWebSocketHandler(cm, b),
		stateHandler:      NewStateHandler(b),
	}
}

// Start runs the connection manager until ctx is cancelled
func (s *Service) Start(ctx context.Context) {
	log.Info().Msg("starting cooldown gateway service")
	s.connectionManager.Start(ctx)
	log.Info().Msg("cooldown gateway service stopped")
}

// RegisterRoutes registers websocket, REST and health routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
	log.Info().Msg("cooldown gateway routes registered")
}

// Handler returns the full HTTP handler: routes wrapped in CORS and served
// as cleartext HTTP/2 when the client asks for it.
func (s *Service) Handler(config Config) http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: config.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})
	return h2c.NewHandler(c.Handler(mux), &http2.Server{})
}

// BroadcastSnapshot pushes the whole board to every client
func (s *Service) BroadcastSnapshot() {
	s.connectionManager.Broadcast(snapshotMessage(s.board.List()))
}

// BroadcastTransition is registered with board.OnTransition
func (s *Service) BroadcastTransition(t board.Transition) {
	s.connectionManager.Broadcast(transitionMessage(t))
}

func (s *Service) ConnectionCount() int {
	return s.connectionManager.ConnectionCount()
}
