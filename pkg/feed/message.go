package feed

import (
	"time"

	"github.com/google/uuid"
)

// MessageType is the channel a log entry belongs to. The console renders
// each channel differently in the radio feed.
type MessageType string

const (
	MessageSystem            MessageType = "system"             // server messages, failures
	MessageCommander         MessageType = "commander"          // commander directives
	MessageActorThoughts     MessageType = "actor_thoughts"     // character internal reasoning
	MessageActorSpeech       MessageType = "actor_speech"       // spoken words over comms
	MessageDirectorNarration MessageType = "director_narration" // narrated events
)

// LogEntry is one immutable line in the append-only turn log. Turn is the
// turn number the entry belongs to; entries written for an aborted turn
// carry the turn number that failed to commit.
type LogEntry struct {
	ID        uuid.UUID   `json:"id"`
	Turn      int         `json:"turn"`
	Type      MessageType `json:"type"`
	Author    string      `json:"author"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewLogEntry creates a log entry. The turn number is stamped when the
// entry is appended to the world log.
func NewLogEntry(t MessageType, author, content string) LogEntry {
	return LogEntry{
		ID:        uuid.New(),
		Type:      t,
		Author:    author,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}
