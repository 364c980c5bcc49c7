package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rsalas72/away-team/internal/engine"
	"github.com/rsalas72/away-team/pkg/feed"
)

// TurnHandler handles commander turn submissions. Turns are strictly
// serialized by the engine; concurrent submissions queue on its mutex.
type TurnHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewTurnHandler(engine *engine.Engine, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{
		engine: engine,
		logger: logger,
	}
}

func (h *TurnHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.WriteHeader(statusCode)
	response := feed.TurnResponse{
		Error:       message,
		CurrentTurn: h.engine.World().CurrentTurn(),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding turn error response", "error", err)
	}
}

// ServeHTTP handles POST /v1/turn
func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		h.logger.Warn("Method not allowed for turn endpoint",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return
	}

	var request feed.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'command' field.")
		return
	}

	h.logger.Info("Turn submitted",
		"turn", h.engine.World().CurrentTurn(),
		"remote_addr", r.RemoteAddr)

	result, err := h.engine.AdvanceTurn(r.Context(), request.Command)
	if err != nil {
		var verr *engine.ValidationError
		var cerr *engine.CapabilityError
		var commitErr *engine.CommitError

		switch {
		case errors.As(err, &verr):
			h.writeError(w, http.StatusBadRequest, verr.Error())
		case errors.As(err, &cerr):
			h.logger.Error("Capability failure", "phase", cerr.Phase, "error", err)
			h.writeError(w, http.StatusBadGateway, cerr.Error())
		case errors.As(err, &commitErr):
			h.logger.Error("Commit failure", "error", err)
			h.writeError(w, http.StatusInternalServerError, commitErr.Error())
		default:
			h.logger.Error("Turn failed", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Turn failed. Please try again.")
		}
		return
	}

	// Return the committed result plus the log lines written this turn.
	// Aborted attempts log system entries under the turn number that
	// failed to commit, so a retry of the same turn deliberately carries
	// those failures in its feed.
	var turnLog []feed.LogEntry
	for _, entry := range h.engine.World().Log() {
		if entry.Turn == result.TurnNumber {
			turnLog = append(turnLog, entry)
		}
	}

	response := feed.TurnResponse{
		Result:      result,
		Log:         turnLog,
		CurrentTurn: h.engine.World().CurrentTurn(),
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding turn response", "error", err)
	}
}
