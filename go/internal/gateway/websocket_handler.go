package gateway

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades clients that want a live feed of the board
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	board             Board
}

func NewWebSocketHandler(cm *ConnectionManager, b Board) *WebSocketHandler {
	return &WebSocketHandler{connectionManager: cm, board: b}
}

// HandleConnection handles GET /ws/cooldowns
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	// the upgrader has already written an error response on failure
	if err := h.connectionManager.UpgradeConnection(w, r, snapshotMessage(h.board.List())); err != nil {
		log.Error().Err(err).Msg("failed to upgrade websocket connection")
	}
}

// HandleConnectionStats handles GET /ws/stats
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"total_connections": h.connectionManager.ConnectionCount(),
	})
}

func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/cooldowns", h.HandleConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}
