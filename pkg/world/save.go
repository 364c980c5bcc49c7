package world

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/pkg/feed"
)

// Save is the serializable form of a World. It captures every field of
// every character and zone plus the log and turn counter, so reloading a
// save reproduces identical behavior for the next turn.
type Save struct {
	SessionID         uuid.UUID             `json:"session_id"`
	ActiveCharacterID string                `json:"active_character_id"`
	Mission           MissionStatus         `json:"mission,omitempty"`
	Characters        map[string]*Character `json:"characters"`
	Zones             map[string]*Zone      `json:"zones"`
	Turns             int                   `json:"turns"`
	Log               []feed.LogEntry       `json:"log"`
	Results           []feed.TurnResult     `json:"results"`
}

// Export returns a deep-copied save of the world.
func (w *World) Export() *Save {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s := &Save{
		SessionID:         w.sessionID,
		ActiveCharacterID: w.activeCharacterID,
		Mission:           w.mission,
		Characters:        make(map[string]*Character, len(w.characters)),
		Zones:             make(map[string]*Zone, len(w.zones)),
		Turns:             w.turns,
		Log:               make([]feed.LogEntry, len(w.log)),
		Results:           make([]feed.TurnResult, len(w.results)),
	}
	for id, c := range w.characters {
		s.Characters[id] = c.Clone()
	}
	for id, z := range w.zones {
		s.Zones[id] = z.Clone()
	}
	copy(s.Log, w.log)
	copy(s.Results, w.results)
	return s
}

// FromSave reconstructs a World from a save.
func FromSave(s *Save) (*World, error) {
	if s == nil {
		return nil, fmt.Errorf("save cannot be nil")
	}
	w := New(s.SessionID)
	for _, c := range s.Characters {
		if err := w.AddCharacter(c.Clone()); err != nil {
			return nil, err
		}
	}
	for _, z := range s.Zones {
		if err := w.AddZone(z.Clone()); err != nil {
			return nil, err
		}
	}
	if s.ActiveCharacterID != "" {
		if err := w.SetActiveCharacter(s.ActiveCharacterID); err != nil {
			return nil, err
		}
	}
	w.SetMission(s.Mission)

	w.mu.Lock()
	w.turns = s.Turns
	w.log = append(w.log, s.Log...)
	w.results = append(w.results, s.Results...)
	w.mu.Unlock()
	return w, nil
}
