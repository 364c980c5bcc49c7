package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/world"
)

// StateHandler serves the read-only turn log. It never mutates the
// world, so it can be polled freely while a turn is in flight.
type StateHandler struct {
	world  *world.World
	logger *slog.Logger
}

func NewStateHandler(w *world.World, logger *slog.Logger) *StateHandler {
	return &StateHandler{
		world:  w,
		logger: logger,
	}
}

// ServeHTTP handles GET /v1/state. An optional since_turn query
// parameter trims the log to entries after that turn.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		h.logger.Warn("Method not allowed for state endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		w.WriteHeader(http.StatusMethodNotAllowed)
		response := feed.StateResponse{Error: "Method not allowed. Only GET is supported."}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Error encoding state error response", "error", err)
		}
		return
	}

	log := h.world.Log()

	if v := r.URL.Query().Get("since_turn"); v != "" {
		since, err := strconv.Atoi(v)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			response := feed.StateResponse{Error: "Invalid since_turn parameter."}
			if err := json.NewEncoder(w).Encode(response); err != nil {
				h.logger.Error("Error encoding state error response", "error", err)
			}
			return
		}
		filtered := make([]feed.LogEntry, 0, len(log))
		for _, entry := range log {
			if entry.Turn > since {
				filtered = append(filtered, entry)
			}
		}
		log = filtered
	}

	response := feed.StateResponse{
		Log:         log,
		CurrentTurn: h.world.CurrentTurn(),
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding state response", "error", err)
	}
}
