package feed

import "github.com/rsalas72/away-team/pkg/rules"

// Patch is the set of world updates the Director declares for one turn,
// keyed by field name and scoped to the active character's zone or the
// character itself. Application is best-effort: only allow-listed,
// pre-existing fields are applied, and unknown keys are silently ignored.
type Patch struct {
	Zone      map[string]any `json:"zone,omitempty"`
	Character map[string]any `json:"character,omitempty"`
}

// IsEmpty reports whether the patch declares no updates.
func (p *Patch) IsEmpty() bool {
	return p == nil || (len(p.Zone) == 0 && len(p.Character) == 0)
}

// DirectorResult accumulates the Director-side facts of one turn:
// whether a check applied, which skill/attribute pair was used, the
// outcome, the narration, and the declared world updates. Success stays
// nil until the resolution phase has run, and is set exactly once.
type DirectorResult struct {
	CheckNeeded bool             `json:"skill_check_needed"`
	Skill       string           `json:"skill_used,omitempty"`
	Attribute   string           `json:"attribute_used,omitempty"`
	Difficulty  rules.Difficulty `json:"difficulty,omitempty"`
	Success     *bool            `json:"success,omitempty"`
	Narration   string           `json:"narration"`
	Updates     Patch            `json:"world_updates,omitempty"`
}
