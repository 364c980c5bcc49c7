package rules

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FallbackAttribute governs skills with no table entry.
const FallbackAttribute = "wits"

//go:embed skills.yaml
var defaultSkillsYAML []byte

var validAttributes = map[string]bool{
	"might":   true,
	"agility": true,
	"wits":    true,
	"empathy": true,
}

// SkillTable is the total mapping from skill name to the attribute that
// backs its checks. It is validated once at load time; lookups for
// unmapped skills fall back to wits.
type SkillTable struct {
	entries map[string]string
}

// LoadSkillTable parses and validates a YAML skill table of the form
//
//	skills:
//	  comtech: wits
//	  heavy_machinery: might
func LoadSkillTable(data []byte) (*SkillTable, error) {
	var doc struct {
		Skills map[string]string `yaml:"skills"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse skill table: %w", err)
	}
	if len(doc.Skills) == 0 {
		return nil, fmt.Errorf("skill table is empty")
	}
	for skill, attr := range doc.Skills {
		if !validAttributes[attr] {
			return nil, fmt.Errorf("skill %q maps to unknown attribute %q", skill, attr)
		}
	}
	return &SkillTable{entries: doc.Skills}, nil
}

// DefaultSkillTable returns the embedded table. The embedded file is
// validated by tests, so a parse failure here is a programming error.
func DefaultSkillTable() *SkillTable {
	t, err := LoadSkillTable(defaultSkillsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded skill table invalid: %v", err))
	}
	return t
}

// Attribute returns the attribute backing checks for the named skill,
// falling back to wits for unmapped skills.
func (t *SkillTable) Attribute(skill string) string {
	if attr, ok := t.entries[skill]; ok {
		return attr
	}
	return FallbackAttribute
}

// Has reports whether the skill has an explicit table entry.
func (t *SkillTable) Has(skill string) bool {
	_, ok := t.entries[skill]
	return ok
}

// Len returns the number of mapped skills.
func (t *SkillTable) Len() int {
	return len(t.entries)
}
