package engine

import "fmt"

// Phase names the pipeline state an error occurred in.
type Phase string

const (
	PhaseIntent    Phase = "intent"
	PhaseInterpret Phase = "interpret"
	PhaseResolve   Phase = "resolve"
	PhaseNarrate   Phase = "narrate"
	PhaseCommit    Phase = "commit"
)

// CapabilityError means the Actor or Director capability errored, timed
// out, or returned malformed structured output. The turn is aborted with
// no state applied and no counter advance.
type CapabilityError struct {
	Phase Phase
	Err   error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s capability failed: %v", e.Phase, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// ValidationError means the turn was rejected before or during the
// intent phase: empty commander text, or an intent referencing a tool
// the character does not carry.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid turn: " + e.Reason
}

// CommitError means the world failed to persist. It is surfaced
// distinctly from capability failures so operators can tell "the
// storyteller failed" from "the world failed to save".
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}
