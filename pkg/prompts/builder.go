package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rsalas72/away-team/pkg/chat"
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

// ActorContext is everything the Actor capability sees for one turn.
type ActorContext struct {
	Character *world.Character
	Zone      *world.Zone
	Command   string // commander directive, may be terse
}

// DirectorContext is everything the Director capability sees for one
// turn: the intent, the resolved outcome, and the snapshots.
type DirectorContext struct {
	Character   *world.Character
	Zone        *world.Zone
	Intent      feed.ActionIntent
	CheckNeeded bool
	Skill       string
	Attribute   string
	Difficulty  rules.Difficulty
	Outcome     rules.Outcome
}

// ActorMessages builds the message sequence for the Actor capability.
func ActorMessages(actx ActorContext) ([]chat.Message, error) {
	if actx.Character == nil || actx.Zone == nil {
		return nil, fmt.Errorf("actor context requires character and zone")
	}

	system := fmt.Sprintf(ActorSystemPrompt, actx.Character.Name, actx.Character.Agenda)

	var sb strings.Builder
	sb.WriteString("CURRENT SITUATION\n")
	writeCharacterSheet(&sb, actx.Character)
	writeZoneBrief(&sb, actx.Zone)

	if actx.Command != "" {
		sb.WriteString("\nCOMMANDER'S ORDERS: " + actx.Command + "\n")
	} else {
		sb.WriteString("\nCOMMANDER'S ORDERS: none this turn\n")
	}
	sb.WriteString("\nDecide your action now.")

	return []chat.Message{chat.System(system), chat.User(sb.String())}, nil
}

// DirectorMessages builds the message sequence for the Director
// capability.
func DirectorMessages(dctx DirectorContext) ([]chat.Message, error) {
	if dctx.Character == nil || dctx.Zone == nil {
		return nil, fmt.Errorf("director context requires character and zone")
	}

	var sb strings.Builder
	sb.WriteString("CHARACTER\n")
	writeCharacterSheet(&sb, dctx.Character)
	writeZoneBrief(&sb, dctx.Zone)

	intentJSON, err := json.Marshal(dctx.Intent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent: %w", err)
	}
	sb.WriteString("\nACTION INTENT: " + string(intentJSON) + "\n")

	sb.WriteString("\nRESOLUTION\n")
	if !dctx.CheckNeeded {
		sb.WriteString("- No skill check required. The action succeeds automatically.\n")
	} else {
		sb.WriteString(fmt.Sprintf("- Skill check: %s (%s), difficulty %s (threshold %d)\n",
			dctx.Skill, dctx.Attribute, dctx.Difficulty, dctx.Outcome.Threshold))
		sb.WriteString(fmt.Sprintf("- Dice: %d + %d, roll total %d\n",
			dctx.Outcome.Dice[0], dctx.Outcome.Dice[1], dctx.Outcome.RollTotal))
		if dctx.Outcome.Success {
			sb.WriteString("- Result: SUCCESS\n")
		} else {
			sb.WriteString("- Result: FAILURE\n")
		}
	}
	sb.WriteString("\nNarrate the outcome and declare world updates now.")

	return []chat.Message{chat.System(DirectorSystemPrompt), chat.User(sb.String())}, nil
}

func writeCharacterSheet(sb *strings.Builder, c *world.Character) {
	attrs, _ := json.Marshal(c.Attributes)
	skills, _ := json.Marshal(c.Skills)
	status, _ := json.Marshal(c.Status)
	fmt.Fprintf(sb, "- Name: %s\n", c.Name)
	fmt.Fprintf(sb, "- Attributes: %s\n", attrs)
	fmt.Fprintf(sb, "- Skills: %s\n", skills)
	fmt.Fprintf(sb, "- Inventory: %s\n", strings.Join(c.Inventory, ", "))
	fmt.Fprintf(sb, "- Condition: %s\n", status)
}

func writeZoneBrief(sb *strings.Builder, z *world.Zone) {
	fmt.Fprintf(sb, "\nZONE: %s\n", z.Name)
	fmt.Fprintf(sb, "- Description: %s\n", z.Description)
	if z.Atmosphere != "" {
		fmt.Fprintf(sb, "- Atmosphere: %s\n", z.Atmosphere)
	}
	if len(z.Exits) > 0 {
		exits, _ := json.Marshal(z.Exits)
		fmt.Fprintf(sb, "- Exits: %s\n", exits)
	}
	if len(z.Objects) > 0 {
		objects, _ := json.Marshal(z.Objects)
		fmt.Fprintf(sb, "- Objects: %s\n", objects)
	}
}
