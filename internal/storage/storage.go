package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/pkg/world"
)

// Storage persists world saves between turns. Static mission data
// (characters, zones, mission brief) comes from the filesystem; saves
// live in Redis keyed by session.
type Storage interface {
	// Ping checks connectivity to the backing store
	Ping(ctx context.Context) error

	// Close releases the connection
	Close() error

	// SaveWorld persists a snapshot of the world for its session
	SaveWorld(ctx context.Context, w *world.World) error

	// LoadWorld restores the world for a session. Returns nil with no
	// error when no save exists.
	LoadWorld(ctx context.Context, sessionID uuid.UUID) (*world.World, error)
}
