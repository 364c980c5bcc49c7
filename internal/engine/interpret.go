package engine

import (
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

// TargetKind classifies what an intent's target resolved to in the
// current zone.
type TargetKind string

const (
	TargetObject  TargetKind = "object"
	TargetExit    TargetKind = "exit"
	TargetUnknown TargetKind = "unknown"
)

// Interpretation is the outcome of the INTERPRET phase: whether the
// action calls for a skill check, and against what.
type Interpretation struct {
	Target      TargetKind
	CheckNeeded bool
	Skill       string
	Difficulty  rules.Difficulty
}

// Default check for forcing a locked exit.
const (
	lockedExitSkill      = "comtech"
	lockedExitDifficulty = rules.DifficultyModerate
)

// Interpret inspects the intent's target against the current zone.
// An object with a required_skill property demands a check with that
// skill at the object's declared (or moderate) difficulty; a locked exit
// demands a comtech check at moderate. Anything else — including a
// target that resolves to nothing in the zone — is narration only and
// succeeds automatically.
func Interpret(intent feed.ActionIntent, zone *world.Zone) Interpretation {
	if obj, ok := zone.Objects[intent.Target]; ok {
		interp := Interpretation{Target: TargetObject}
		if skill := obj.RequiredSkill(); skill != "" {
			interp.CheckNeeded = true
			interp.Skill = skill
			interp.Difficulty = rules.Difficulty(obj.Difficulty())
			if !interp.Difficulty.IsKnown() {
				interp.Difficulty = rules.DifficultyModerate
			}
		}
		return interp
	}

	if exit, ok := zone.Exits[intent.Target]; ok {
		interp := Interpretation{Target: TargetExit}
		if exit.Status == world.ExitLocked {
			interp.CheckNeeded = true
			interp.Skill = lockedExitSkill
			interp.Difficulty = lockedExitDifficulty
		}
		return interp
	}

	return Interpretation{Target: TargetUnknown}
}
