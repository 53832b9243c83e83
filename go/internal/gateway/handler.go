package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jv-albuquerque/cooldown/go/internal/board"
	"github.com/rs/zerolog/log"
)

// Board is the part of board.Board the HTTP surface needs.
type Board interface {
	List() []board.Entry
	Get(name string) (board.Entry, error)
	Apply(name string, action board.Action, delta time.Duration) (board.Entry, error)
}

// StateHandler serves cooldown state and actions over HTTP
type StateHandler struct {
	board Board
}

func NewStateHandler(b Board) *StateHandler {
	return &StateHandler{board: b}
}

// HandleList handles GET /api/cooldowns
func (h *StateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.List())
}

// HandleGet handles GET /api/cooldowns/{name}
func (h *StateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.board.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// HandleAction handles POST /api/cooldowns/{name}/{action}. add-time reads
// its delta from the "delta" query parameter as a Go duration ("1.5s").
func (h *StateHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	action, err := board.ParseAction(r.PathValue("action"))
	if err != nil {
		writeError(w, err)
		return
	}

	var delta time.Duration
	if action == board.ActionAddTime {
		raw := r.URL.Query().Get("delta")
		if raw == "" {
			http.Error(w, "delta is required", http.StatusBadRequest)
			return
		}
		delta, err = time.ParseDuration(raw)
		if err != nil {
			http.Error(w, "invalid delta format", http.StatusBadRequest)
			return
		}
	}

	entry, err := h.board.Apply(name, action, delta)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Info().
		Str("cooldown", name).
		Str("action", string(action)).
		Str("state", entry.State.String()).
		Msg("cooldown action via api")
	writeJSON(w, http.StatusOK, entry)
}

// RegisterStateRoutes registers the REST routes
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/cooldowns", h.HandleList)
	mux.HandleFunc("GET /api/cooldowns/{name}", h.HandleGet)
	mux.HandleFunc("POST /api/cooldowns/{name}/{action}", h.HandleAction)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, board.ErrUnknownAction):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("cooldown request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
