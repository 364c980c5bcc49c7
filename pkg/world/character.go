package world

import "slices"

// Attributes are the character's core stats, each in [0,5].
type Attributes struct {
	Might   int `json:"might"`
	Agility int `json:"agility"`
	Wits    int `json:"wits"`
	Empathy int `json:"empathy"`
}

// Get returns the named attribute value. Unknown names return the wits
// value, matching the skill table's fallback attribute.
func (a Attributes) Get(name string) int {
	switch name {
	case "might":
		return a.Might
	case "agility":
		return a.Agility
	case "wits":
		return a.Wits
	case "empathy":
		return a.Empathy
	default:
		return a.Wits
	}
}

// Status is the character's current condition.
type Status struct {
	Health     string   `json:"health"` // "healthy", "wounded", "critical"
	Stress     int      `json:"stress"`
	Conditions []string `json:"conditions,omitempty"`
}

// Character is a playable crew member. Instances are owned by the World
// and mutated only through CommitTurn; the engine works on clones.
type Character struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Attributes  Attributes     `json:"attributes"`
	Skills      map[string]int `json:"skills"`
	Inventory   []string       `json:"inventory,omitempty"`
	Agenda      string         `json:"agenda"` // private motivation, opaque to the engine
	Status      Status         `json:"status"`
	CurrentZone string         `json:"current_zone"`
}

// Skill returns the named skill value, 0 when untrained.
func (c *Character) Skill(name string) int {
	return c.Skills[name]
}

// HasItem reports whether the item is in the character's inventory.
func (c *Character) HasItem(item string) bool {
	return slices.Contains(c.Inventory, item)
}

// Clone returns a deep copy for use as a per-turn snapshot.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Skills = make(map[string]int, len(c.Skills))
	for k, v := range c.Skills {
		cp.Skills[k] = v
	}
	cp.Inventory = slices.Clone(c.Inventory)
	cp.Status.Conditions = slices.Clone(c.Status.Conditions)
	return &cp
}
