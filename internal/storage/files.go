package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/pkg/world"
)

// missionFile is the on-disk mission brief. It carries the mission
// summary plus the id of the character the away team fields this session.
type missionFile struct {
	world.MissionStatus
	ActiveCharacter string `json:"active_character"`
}

// LoadInitialWorld builds a fresh world for a session from the static
// mission data on disk: data/characters/*.json, data/zones/*.json and
// data/mission.json. Character and zone IDs default to their filenames.
func LoadInitialWorld(dataDir string, sessionID uuid.UUID) (*world.World, error) {
	if dataDir == "" {
		dataDir = "./data"
	}

	w := world.New(sessionID)

	characterIDs, err := listJSONFiles(filepath.Join(dataDir, "characters"))
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	if len(characterIDs) == 0 {
		return nil, fmt.Errorf("no character files found in %s", filepath.Join(dataDir, "characters"))
	}
	for _, id := range characterIDs {
		c, err := loadCharacterFile(filepath.Join(dataDir, "characters", id+".json"))
		if err != nil {
			return nil, err
		}
		if err := w.AddCharacter(c); err != nil {
			return nil, err
		}
	}

	zoneIDs, err := listJSONFiles(filepath.Join(dataDir, "zones"))
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	if len(zoneIDs) == 0 {
		return nil, fmt.Errorf("no zone files found in %s", filepath.Join(dataDir, "zones"))
	}
	for _, id := range zoneIDs {
		z, err := loadZoneFile(filepath.Join(dataDir, "zones", id+".json"))
		if err != nil {
			return nil, err
		}
		if err := w.AddZone(z); err != nil {
			return nil, err
		}
	}

	mission, err := loadMissionFile(filepath.Join(dataDir, "mission.json"))
	if err != nil {
		return nil, err
	}
	w.SetMission(mission.MissionStatus)

	active := mission.ActiveCharacter
	if active == "" {
		active = characterIDs[0]
	}
	if err := w.SetActiveCharacter(active); err != nil {
		return nil, err
	}

	// Sanity: every character must start in a declared zone
	for _, id := range characterIDs {
		c, _ := w.Character(id)
		if c.CurrentZone == "" {
			return nil, fmt.Errorf("character %s has no current_zone", id)
		}
		if _, ok := w.Zone(c.CurrentZone); !ok {
			return nil, fmt.Errorf("character %s starts in undeclared zone %s", id, c.CurrentZone)
		}
	}

	return w, nil
}

func listJSONFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			ids = append(ids, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return ids, nil
}

func loadCharacterFile(path string) (*world.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read character file: %w", err)
	}

	var c world.Character
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse character JSON from %s: %w", path, err)
	}

	// Filename overrides any ID in the JSON
	c.ID = strings.TrimSuffix(filepath.Base(path), ".json")

	return &c, nil
}

func loadZoneFile(path string) (*world.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read zone file: %w", err)
	}

	var z world.Zone
	if err := json.Unmarshal(data, &z); err != nil {
		return nil, fmt.Errorf("failed to parse zone JSON from %s: %w", path, err)
	}

	z.ID = strings.TrimSuffix(filepath.Base(path), ".json")

	return &z, nil
}

func loadMissionFile(path string) (*missionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &missionFile{}, nil
		}
		return nil, fmt.Errorf("failed to read mission file: %w", err)
	}

	var m missionFile
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse mission JSON from %s: %w", path, err)
	}

	return &m, nil
}
