package feed

import "fmt"

// ActionSpeed categorizes how long an action takes within a turn.
type ActionSpeed string

const (
	SpeedSlow ActionSpeed = "slow"
	SpeedFast ActionSpeed = "fast"
)

// ActionIntent is the character's intended action for one turn. The verb
// vocabulary is open (REPAIR, MOVE, USE, EXAMINE, ATTACK, ...); the
// target must name an exit or object in the character's current zone to
// have mechanical effect. Produced once per turn by the Actor capability
// and immutable thereafter.
type ActionIntent struct {
	Verb      string      `json:"verb"`
	Target    string      `json:"target"`
	Using     string      `json:"using,omitempty"` // tool from inventory, if any
	Speed     ActionSpeed `json:"speed"`
	Rationale string      `json:"rationale,omitempty"`
}

// Validate checks the structural requirements of an intent. Target
// resolution against the zone happens later, in interpretation.
func (ai *ActionIntent) Validate() error {
	if ai.Verb == "" {
		return fmt.Errorf("intent verb cannot be empty")
	}
	if ai.Target == "" {
		return fmt.Errorf("intent target cannot be empty")
	}
	if ai.Speed != SpeedSlow && ai.Speed != SpeedFast {
		return fmt.Errorf("intent speed must be %q or %q, got %q", SpeedSlow, SpeedFast, ai.Speed)
	}
	return nil
}

// ActorResponse is the structured output of the Actor capability.
type ActorResponse struct {
	Thoughts string       `json:"thoughts"`
	Speech   string       `json:"speech"`
	Intent   ActionIntent `json:"action_intent"`
}
