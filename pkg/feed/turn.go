package feed

import "fmt"

// TurnResult is the immutable record of one committed turn. Turn numbers
// start at 1 and are strictly increasing and gap-free across the log.
type TurnResult struct {
	TurnNumber      int            `json:"turn_number"`
	ActiveCharacter string         `json:"active_character"`
	HelmetCamFeed   string         `json:"helmet_cam_feed"` // director narration
	CharacterSpeech string         `json:"character_speech"`
	StateChanges    map[string]any `json:"state_changes"` // patch actually applied
}

// TurnRequest is the body of POST /v1/turn.
type TurnRequest struct {
	Command string `json:"command"`
}

// Validate rejects empty commander text before any pipeline phase runs.
func (tr *TurnRequest) Validate() error {
	if tr.Command == "" {
		return fmt.Errorf("command cannot be empty")
	}
	return nil
}

// TurnResponse is the body returned by POST /v1/turn.
type TurnResponse struct {
	Result      *TurnResult `json:"result,omitempty"`
	Log         []LogEntry  `json:"log,omitempty"`
	CurrentTurn int         `json:"current_turn"`
	Error       string      `json:"error,omitempty"`
}

// StateResponse is the read-only snapshot returned by GET /v1/state.
type StateResponse struct {
	Log         []LogEntry `json:"log"`
	CurrentTurn int        `json:"current_turn"`
	Error       string     `json:"error,omitempty"`
}
