package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/pkg/world"
)

// WorldResponse is the full world snapshot returned by GET /v1/world.
type WorldResponse struct {
	SessionID       uuid.UUID                   `json:"session_id"`
	Mission         world.MissionStatus         `json:"mission"`
	ActiveCharacter string                      `json:"active_character"`
	Characters      map[string]*world.Character `json:"characters"`
	Zones           map[string]*world.Zone      `json:"zones"`
	CurrentTurn     int                         `json:"current_turn"`
	Error           string                      `json:"error,omitempty"`
}

// WorldHandler serves a deep-copied snapshot of the whole world:
// mission brief, characters and zones. Commander-facing, read-only.
type WorldHandler struct {
	world  *world.World
	logger *slog.Logger
}

func NewWorldHandler(w *world.World, logger *slog.Logger) *WorldHandler {
	return &WorldHandler{
		world:  w,
		logger: logger,
	}
}

// ServeHTTP handles GET /v1/world
func (h *WorldHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for world endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := WorldResponse{Error: "Method not allowed. Only GET is supported."}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Error encoding world error response", "error", err)
		}
		return
	}

	save := h.world.Export()
	response := WorldResponse{
		SessionID:       save.SessionID,
		Mission:         save.Mission,
		ActiveCharacter: save.ActiveCharacterID,
		Characters:      save.Characters,
		Zones:           save.Zones,
		CurrentTurn:     save.Turns + 1,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding world response", "error", err)
	}
}
