package feed

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler serves the live market feed
type WebSocketHandler struct {
	connectionManager *ConnectionManager
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
	}
}

// HandleMarketConnection upgrades to a feed of every market event, or only
// those involving team_id when given.
func (h *WebSocketHandler) HandleMarketConnection(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID != "" {
		if _, err := uuid.Parse(teamID); err != nil {
			http.Error(w, "invalid team_id format", http.StatusBadRequest)
			return
		}
	}

	if err := h.connectionManager.UpgradeConnection(w, r, teamID); err != nil {
		// the upgrader has already written an error response
		log.Error().Err(err).Str("team_id", teamID).Msg("failed to upgrade WebSocket connection")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connectionManager.GetConnectionStats()); err != nil {
		log.Error().Err(err).Msg("failed to write connection stats")
	}
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/market", h.HandleMarketConnection)
	mux.HandleFunc("/ws/stats", h.HandleConnectionStats)
}
