package world

import (
	"strings"

	"github.com/rsalas72/away-team/pkg/feed"
)

// Patch application is deliberately permissive: only the fields named
// below can be written, anything else in the patch is ignored without
// error, and values that do not coerce to the field's type are likewise
// dropped. Ignoring unknown fields is observable API behavior that
// callers rely on, so it is an allow-list rather than a validator.

// Character fields the Director may patch.
const (
	FieldHealth      = "health"
	FieldStress      = "stress"
	FieldConditions  = "conditions"
	FieldInventory   = "inventory"
	FieldCurrentZone = "current_zone"
)

// Zone fields the Director may patch, either directly or through dotted
// paths of the form exits.<name>.status and objects.<name>.status.
const (
	FieldDescription = "description"
	FieldAtmosphere  = "atmosphere"
	FieldStatus      = "status"
)

// applyPatch writes recognized fields onto the live character and zone
// and returns the applied set, keyed "character.<field>" and
// "zone.<field>". Caller holds the write lock.
func (w *World) applyPatch(c *Character, z *Zone, p feed.Patch) map[string]any {
	applied := make(map[string]any)

	for field, value := range p.Character {
		if w.applyCharacterField(c, field, value) {
			applied["character."+field] = value
		}
	}
	for field, value := range p.Zone {
		if applyZoneField(z, field, value) {
			applied["zone."+field] = value
		}
	}
	return applied
}

func (w *World) applyCharacterField(c *Character, field string, value any) bool {
	switch field {
	case FieldHealth:
		s, ok := value.(string)
		if !ok {
			return false
		}
		c.Status.Health = s
	case FieldStress:
		n, ok := coerceInt(value)
		if !ok || n < 0 {
			return false
		}
		c.Status.Stress = n
	case FieldConditions:
		ss, ok := coerceStringSlice(value)
		if !ok {
			return false
		}
		c.Status.Conditions = ss
	case FieldInventory:
		ss, ok := coerceStringSlice(value)
		if !ok {
			return false
		}
		c.Inventory = ss
	case FieldCurrentZone:
		s, ok := value.(string)
		if !ok {
			return false
		}
		// Moving to an undeclared zone would strand the character.
		if _, exists := w.zones[s]; !exists {
			return false
		}
		c.CurrentZone = s
	default:
		return false
	}
	return true
}

func applyZoneField(z *Zone, field string, value any) bool {
	switch field {
	case FieldDescription:
		s, ok := value.(string)
		if !ok {
			return false
		}
		z.Description = s
		return true
	case FieldAtmosphere:
		s, ok := value.(string)
		if !ok {
			return false
		}
		z.Atmosphere = s
		return true
	}

	// Dotted paths: exits.<name>.status, objects.<name>.status,
	// objects.<name>.description.
	parts := strings.Split(field, ".")
	if len(parts) != 3 {
		return false
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	switch parts[0] {
	case "exits":
		e, exists := z.Exits[parts[1]]
		if !exists || parts[2] != FieldStatus {
			return false
		}
		e.Status = s
		z.Exits[parts[1]] = e
		return true
	case "objects":
		o, exists := z.Objects[parts[1]]
		if !exists {
			return false
		}
		switch parts[2] {
		case FieldStatus:
			o.Status = s
		case FieldDescription:
			o.Description = s
		default:
			return false
		}
		z.Objects[parts[1]] = o
		return true
	}
	return false
}

func coerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		// JSON numbers decode as float64.
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func coerceStringSlice(v any) ([]string, bool) {
	switch vs := v.(type) {
	case []string:
		return append([]string(nil), vs...), true
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
