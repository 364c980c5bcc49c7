package world

import "slices"

// Exit statuses with mechanical meaning. Status is otherwise free-form.
const (
	ExitOpen    = "open"
	ExitLocked  = "locked"
	ExitBlocked = "blocked"
	ExitJammed  = "jammed"
)

// ZoneObject property keys the interpreter understands.
const (
	PropRequiredSkill = "required_skill"
	PropDifficulty    = "difficulty"
	PropRepairable    = "repairable"
)

// Exit connects a zone to a destination zone.
type Exit struct {
	To           string   `json:"to"`
	Status       string   `json:"status"` // "open", "locked", "blocked", "jammed"
	Description  string   `json:"description,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// ZoneObject is an interactable object within a zone. Properties is a
// free-form bag; the interpreter only reads required_skill and
// difficulty.
type ZoneObject struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"` // "functional", "smashed", "locked", ...
	Properties  map[string]any `json:"properties,omitempty"`
	CanInteract bool           `json:"can_interact"`
}

// RequiredSkill returns the skill a check against this object requires,
// or "" when interaction needs no check.
func (o *ZoneObject) RequiredSkill() string {
	s, _ := o.Properties[PropRequiredSkill].(string)
	return s
}

// Difficulty returns the declared difficulty tier, or "" when none is
// declared (the interpreter defaults to moderate).
func (o *ZoneObject) Difficulty() string {
	d, _ := o.Properties[PropDifficulty].(string)
	return d
}

// Zone is one location in the game world. Instances are owned by the
// World and mutated only through CommitTurn.
type Zone struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Exits       map[string]Exit       `json:"exits,omitempty"`
	Objects     map[string]ZoneObject `json:"objects,omitempty"`
	Atmosphere  string                `json:"atmosphere,omitempty"`
}

// Clone returns a deep copy for use as a per-turn snapshot.
func (z *Zone) Clone() *Zone {
	if z == nil {
		return nil
	}
	cp := *z
	cp.Exits = make(map[string]Exit, len(z.Exits))
	for name, e := range z.Exits {
		e.Requirements = slices.Clone(e.Requirements)
		cp.Exits[name] = e
	}
	cp.Objects = make(map[string]ZoneObject, len(z.Objects))
	for name, o := range z.Objects {
		props := make(map[string]any, len(o.Properties))
		for k, v := range o.Properties {
			props[k] = v
		}
		o.Properties = props
		cp.Objects[name] = o
	}
	return &cp
}
