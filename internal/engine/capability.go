package engine

import (
	"context"

	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

// ActorRequest is the context handed to the Actor capability: read-only
// snapshots plus the commander's directive.
type ActorRequest struct {
	Character *world.Character
	Zone      *world.Zone
	Command   string
}

// ActorCapability decides the character's action for one turn. It is
// expected to block on a network call, so implementations must honor
// context cancellation; the pipeline bounds each invocation with a
// timeout.
type ActorCapability interface {
	Decide(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error)
}

// DirectorRequest is the context handed to the Director capability
// after resolution: the intent, the check facts, and the resolved
// outcome.
type DirectorRequest struct {
	Character   *world.Character
	Zone        *world.Zone
	Intent      feed.ActionIntent
	CheckNeeded bool
	Skill       string
	Attribute   string
	Difficulty  rules.Difficulty
	Outcome     rules.Outcome
}

// DirectorCapability narrates the resolved outcome and declares world
// updates. Narration must be non-empty; the pipeline aborts the turn
// otherwise.
type DirectorCapability interface {
	Narrate(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error)
}

// WorldStore persists the world after a committed turn.
type WorldStore interface {
	SaveWorld(ctx context.Context, w *world.World) error
}
