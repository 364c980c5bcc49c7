package rules

// Difficulty is the tier of a skill check. Tiers map to fixed integer
// thresholds that a roll total must meet or beat.
type Difficulty string

const (
	DifficultyTrivial  Difficulty = "trivial"
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyHard     Difficulty = "hard"
	DifficultyExtreme  Difficulty = "extreme"
)

// DefaultThreshold is used for unknown or missing difficulty tiers.
const DefaultThreshold = 10

var thresholds = map[Difficulty]int{
	DifficultyTrivial:  6,
	DifficultyEasy:     8,
	DifficultyModerate: 10,
	DifficultyHard:     12,
	DifficultyExtreme:  14,
}

// Threshold returns the roll total required for success at this tier.
// Unknown tiers fall back to moderate.
func (d Difficulty) Threshold() int {
	if t, ok := thresholds[d]; ok {
		return t
	}
	return DefaultThreshold
}

// IsKnown reports whether the tier is one of the five defined tiers.
func (d Difficulty) IsKnown() bool {
	_, ok := thresholds[d]
	return ok
}
