package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsalas72/away-team/pkg/chat"
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

func promptFixtures() (*world.Character, *world.Zone) {
	c := &world.Character{
		ID:          "miller",
		Name:        "Vanessa Miller",
		Attributes:  world.Attributes{Might: 2, Agility: 2, Wits: 2, Empathy: 1},
		Skills:      map[string]int{"comtech": 1},
		Inventory:   []string{"multitool", "pistol"},
		Agenda:      "Get the job done and get paid.",
		Status:      world.Status{Health: "healthy", Stress: 1},
		CurrentZone: "medbay_b",
	}
	z := &world.Zone{
		ID:          "medbay_b",
		Name:        "Medical Bay B",
		Description: "A sterile white medical facility.",
		Exits: map[string]world.Exit{
			"north_door": {To: "corridor_3", Status: world.ExitLocked},
		},
		Objects: map[string]world.ZoneObject{
			"medical_scanner": {Name: "medical_scanner", Description: "A wall-mounted scanner.", Status: "functional", CanInteract: true},
		},
		Atmosphere: "Tense and urgent.",
	}
	return c, z
}

func TestActorMessages(t *testing.T) {
	c, z := promptFixtures()
	msgs, err := ActorMessages(ActorContext{Character: c, Zone: z, Command: "Get that door open, Miller!"})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, chat.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Vanessa Miller")
	assert.Contains(t, msgs[0].Content, "Get the job done and get paid.")
	assert.Contains(t, msgs[0].Content, "action_intent")

	assert.Equal(t, chat.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Medical Bay B")
	assert.Contains(t, msgs[1].Content, "north_door")
	assert.Contains(t, msgs[1].Content, "medical_scanner")
	assert.Contains(t, msgs[1].Content, "multitool")
	assert.Contains(t, msgs[1].Content, "Get that door open, Miller!")
}

func TestActorMessages_NoCommand(t *testing.T) {
	c, z := promptFixtures()
	msgs, err := ActorMessages(ActorContext{Character: c, Zone: z})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, "none this turn")
}

func TestActorMessages_MissingContext(t *testing.T) {
	_, err := ActorMessages(ActorContext{})
	assert.Error(t, err)
}

func TestDirectorMessages_WithCheck(t *testing.T) {
	c, z := promptFixtures()
	msgs, err := DirectorMessages(DirectorContext{
		Character:   c,
		Zone:        z,
		Intent:      feed.ActionIntent{Verb: "REPAIR", Target: "door_control_panel_north", Using: "multitool", Speed: feed.SpeedSlow},
		CheckNeeded: true,
		Skill:       "comtech",
		Attribute:   "wits",
		Difficulty:  rules.DifficultyModerate,
		Outcome:     rules.Outcome{Dice: [2]int{4, 3}, RollTotal: 10, Threshold: 10, Success: true},
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, chat.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "world_updates")

	assert.Contains(t, msgs[1].Content, "comtech")
	assert.Contains(t, msgs[1].Content, "threshold 10")
	assert.Contains(t, msgs[1].Content, "SUCCESS")
	assert.Contains(t, msgs[1].Content, `"verb":"REPAIR"`)
}

func TestDirectorMessages_NoCheck(t *testing.T) {
	c, z := promptFixtures()
	msgs, err := DirectorMessages(DirectorContext{
		Character: c,
		Zone:      z,
		Intent:    feed.ActionIntent{Verb: "EXAMINE", Target: "medical_scanner", Speed: feed.SpeedFast},
		Outcome:   rules.AutomaticSuccess(),
	})
	require.NoError(t, err)
	assert.Contains(t, msgs[1].Content, "succeeds automatically")
	assert.NotContains(t, msgs[1].Content, "FAILURE")
}
