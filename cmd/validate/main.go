package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

func main() {
	dataDir := "./data"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	validator := &DataValidator{
		skills: rules.DefaultSkillTable(),
	}

	if err := validator.validateDir(dataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Mission data is valid!")
}

type DataValidator struct {
	skills *rules.SkillTable
	errors []string

	characters map[string]*world.Character
	zones      map[string]*world.Zone
}

func (v *DataValidator) validateDir(dataDir string) error {
	fmt.Printf("Validating %s...\n", dataDir)

	v.errors = nil
	v.characters = make(map[string]*world.Character)
	v.zones = make(map[string]*world.Zone)

	if err := v.loadAll(dataDir); err != nil {
		return err
	}

	if len(v.characters) == 0 {
		v.addError("no character files found")
	}
	if len(v.zones) == 0 {
		v.addError("no zone files found")
	}

	for id, z := range v.zones {
		v.validateZone(id, z)
	}
	for id, c := range v.characters {
		v.validateCharacter(id, c)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", dataDir, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *DataValidator) loadAll(dataDir string) error {
	charFiles, err := filepath.Glob(filepath.Join(dataDir, "characters", "*.json"))
	if err != nil {
		return err
	}
	for _, path := range charFiles {
		id, err := v.validateFilename(path)
		if err != nil {
			return err
		}
		var c world.Character
		if err := decodeStrict(path, &c); err != nil {
			return err
		}
		c.ID = id
		v.characters[id] = &c
	}

	zoneFiles, err := filepath.Glob(filepath.Join(dataDir, "zones", "*.json"))
	if err != nil {
		return err
	}
	for _, path := range zoneFiles {
		id, err := v.validateFilename(path)
		if err != nil {
			return err
		}
		var z world.Zone
		if err := decodeStrict(path, &z); err != nil {
			return err
		}
		z.ID = id
		v.zones[id] = &z
	}

	missionPath := filepath.Join(dataDir, "mission.json")
	if _, err := os.Stat(missionPath); err == nil {
		var mission struct {
			world.MissionStatus
			ActiveCharacter string `json:"active_character"`
		}
		if err := decodeStrict(missionPath, &mission); err != nil {
			return err
		}
		if mission.ActiveCharacter != "" {
			if _, ok := v.characters[mission.ActiveCharacter]; !ok {
				v.addError(fmt.Sprintf("mission active_character '%s' has no character file", mission.ActiveCharacter))
			}
		}
	}

	return nil
}

func (v *DataValidator) validateFilename(path string) (string, error) {
	name := strings.TrimSuffix(filepath.Base(path), ".json")
	if !isValidID(name) {
		return "", fmt.Errorf("filename '%s' must be lowercase snake_case", filepath.Base(path))
	}
	return name, nil
}

func (v *DataValidator) validateZone(id string, z *world.Zone) {
	if z.Name == "" {
		v.addError(fmt.Sprintf("zone '%s' has no name", id))
	}
	if z.Description == "" {
		v.addError(fmt.Sprintf("zone '%s' has no description", id))
	}

	for exitName, exit := range z.Exits {
		if !isValidID(exitName) {
			v.addError(fmt.Sprintf("zone '%s' exit '%s' should be lowercase snake_case", id, exitName))
		}
		if exit.To == "" {
			v.addError(fmt.Sprintf("zone '%s' exit '%s' has no destination", id, exitName))
		} else if _, ok := v.zones[exit.To]; !ok {
			v.addError(fmt.Sprintf("zone '%s' exit '%s' leads to undeclared zone '%s'", id, exitName, exit.To))
		}
		if exit.Status == "" {
			v.addError(fmt.Sprintf("zone '%s' exit '%s' has no status", id, exitName))
		}
	}

	for objName, obj := range z.Objects {
		if !isValidID(objName) {
			v.addError(fmt.Sprintf("zone '%s' object '%s' should be lowercase snake_case", id, objName))
		}
		if skill := obj.RequiredSkill(); skill != "" && !v.skills.Has(skill) {
			v.addError(fmt.Sprintf("zone '%s' object '%s' requires unknown skill '%s'", id, objName, skill))
		}
		if diff := obj.Difficulty(); diff != "" && !rules.Difficulty(diff).IsKnown() {
			v.addError(fmt.Sprintf("zone '%s' object '%s' declares unknown difficulty '%s'", id, objName, diff))
		}
	}
}

func (v *DataValidator) validateCharacter(id string, c *world.Character) {
	if c.Name == "" {
		v.addError(fmt.Sprintf("character '%s' has no name", id))
	}
	if c.CurrentZone == "" {
		v.addError(fmt.Sprintf("character '%s' has no current_zone", id))
	} else if _, ok := v.zones[c.CurrentZone]; !ok {
		v.addError(fmt.Sprintf("character '%s' starts in undeclared zone '%s'", id, c.CurrentZone))
	}

	for skill, level := range c.Skills {
		if !v.skills.Has(skill) {
			v.addError(fmt.Sprintf("character '%s' has unknown skill '%s'", id, skill))
		}
		if level < 0 || level > 5 {
			v.addError(fmt.Sprintf("character '%s' skill '%s' level %d out of range 0-5", id, skill, level))
		}
	}
}

func (v *DataValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func decodeStrict(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", path)
	}

	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", path, err)
	}

	return nil
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
