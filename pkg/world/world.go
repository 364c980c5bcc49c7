package world

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/pkg/feed"
)

// MissionStatus is the commander-facing mission summary.
type MissionStatus struct {
	Objective    string `json:"objective,omitempty"`
	Status       string `json:"status,omitempty"`
	TimePressure string `json:"time_pressure,omitempty"`
}

// World is the authoritative game state: characters, zones, the mission,
// and the append-only turn log. It has exactly one writer (the turn
// pipeline's commit phase); readers between turns take clones. The turn
// counter advances only inside CommitTurn, so a committed turn and its
// counter increment are atomic.
type World struct {
	mu                sync.RWMutex
	sessionID         uuid.UUID
	characters        map[string]*Character
	zones             map[string]*Zone
	activeCharacterID string
	mission           MissionStatus
	turns             int // committed turn count
	log               []feed.LogEntry
	results           []feed.TurnResult
}

// New creates an empty world for the given session.
func New(sessionID uuid.UUID) *World {
	return &World{
		sessionID:  sessionID,
		characters: make(map[string]*Character),
		zones:      make(map[string]*Zone),
		log:        make([]feed.LogEntry, 0),
		results:    make([]feed.TurnResult, 0),
	}
}

// AddCharacter registers a character. Used at world initialization only.
func (w *World) AddCharacter(c *Character) error {
	if c == nil || c.ID == "" {
		return fmt.Errorf("character must have an id")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.characters[c.ID]; exists {
		return fmt.Errorf("character %q already exists", c.ID)
	}
	w.characters[c.ID] = c
	if w.activeCharacterID == "" {
		w.activeCharacterID = c.ID
	}
	return nil
}

// AddZone registers a zone. Used at world initialization only.
func (w *World) AddZone(z *Zone) error {
	if z == nil || z.ID == "" {
		return fmt.Errorf("zone must have an id")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.zones[z.ID]; exists {
		return fmt.Errorf("zone %q already exists", z.ID)
	}
	w.zones[z.ID] = z
	return nil
}

// SetActiveCharacter selects whose turn it is.
func (w *World) SetActiveCharacter(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.characters[id]; !ok {
		return fmt.Errorf("unknown character %q", id)
	}
	w.activeCharacterID = id
	return nil
}

// SetMission sets the mission summary.
func (w *World) SetMission(m MissionStatus) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mission = m
}

// SessionID returns the world's session id.
func (w *World) SessionID() uuid.UUID {
	return w.sessionID
}

// ActiveCharacterID returns the id of the character whose turn it is.
func (w *World) ActiveCharacterID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeCharacterID
}

// Mission returns the mission summary.
func (w *World) Mission() MissionStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mission
}

// CurrentTurn returns the number the next committed turn will carry.
// Turn numbers start at 1.
func (w *World) CurrentTurn() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.turns + 1
}

// CommittedTurns returns how many turns have committed.
func (w *World) CommittedTurns() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.turns
}

// Character returns a clone of the named character.
func (w *World) Character(id string) (*Character, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.characters[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Zone returns a clone of the named zone.
func (w *World) Zone(id string) (*Zone, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	z, ok := w.zones[id]
	if !ok {
		return nil, false
	}
	return z.Clone(), true
}

// Snapshot returns clones of the active character and its current zone.
// The pipeline takes one snapshot at INTENT entry and works on it for
// the whole turn, so a concurrent reader never observes a turn partially
// applied.
func (w *World) Snapshot() (*Character, *Zone, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.characters[w.activeCharacterID]
	if !ok {
		return nil, nil, fmt.Errorf("no active character")
	}
	z, ok := w.zones[c.CurrentZone]
	if !ok {
		return nil, nil, fmt.Errorf("character %q is in unknown zone %q", c.ID, c.CurrentZone)
	}
	return c.Clone(), z.Clone(), nil
}

// Log returns a copy of the append-only log in turn order.
func (w *World) Log() []feed.LogEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]feed.LogEntry, len(w.log))
	copy(out, w.log)
	return out
}

// Results returns a copy of the committed turn results in turn order.
func (w *World) Results() []feed.TurnResult {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]feed.TurnResult, len(w.results))
	copy(out, w.results)
	return out
}

// AppendSystemEntry records a system-channel entry without advancing the
// turn counter. Used for validation and capability failures: the entry
// carries the turn number that failed to commit.
func (w *World) AppendSystemEntry(content string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	entry := feed.NewLogEntry(feed.MessageSystem, "System", content)
	entry.Turn = w.turns + 1
	w.log = append(w.log, entry)
}

// CommitRequest carries everything the commit phase applies for one turn.
type CommitRequest struct {
	CharacterID string
	Narration   string
	Speech      string
	Patch       feed.Patch
	Entries     []feed.LogEntry
}

// CommitTurn applies the declared patch, appends the turn's log entries
// and result, and advances the turn counter by exactly one — all under a
// single lock, so the commit is atomic with respect to the counter.
// Unknown patch fields are silently ignored and excluded from the
// applied set.
func (w *World) CommitTurn(req CommitRequest) (*feed.TurnResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	c, ok := w.characters[req.CharacterID]
	if !ok {
		return nil, fmt.Errorf("unknown character %q", req.CharacterID)
	}
	z, ok := w.zones[c.CurrentZone]
	if !ok {
		return nil, fmt.Errorf("character %q is in unknown zone %q", c.ID, c.CurrentZone)
	}

	applied := w.applyPatch(c, z, req.Patch)

	turn := w.turns + 1
	for _, e := range req.Entries {
		e.Turn = turn
		w.log = append(w.log, e)
	}

	result := feed.TurnResult{
		TurnNumber:      turn,
		ActiveCharacter: req.CharacterID,
		HelmetCamFeed:   req.Narration,
		CharacterSpeech: req.Speech,
		StateChanges:    applied,
	}
	w.results = append(w.results, result)
	w.turns = turn
	return &result, nil
}
