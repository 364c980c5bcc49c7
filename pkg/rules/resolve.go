package rules

import (
	"math/rand"
)

// Source yields single die results in [1,6]. Injecting the source keeps
// resolution deterministic under test: a fixed seed reproduces a fixed
// roll sequence, and FixedSource pins exact dice.
type Source interface {
	Die() int
}

type randSource struct {
	rng *rand.Rand
}

func (s *randSource) Die() int {
	return s.rng.Intn(6) + 1
}

// NewSeededSource returns a dice source backed by math/rand with the
// given seed.
func NewSeededSource(seed int64) Source {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

type fixedSource struct {
	rolls []int
	next  int
}

func (s *fixedSource) Die() int {
	if len(s.rolls) == 0 {
		return 1
	}
	d := s.rolls[s.next%len(s.rolls)]
	s.next++
	return d
}

// FixedSource returns a source that cycles through the given die results.
// Intended for tests.
func FixedSource(rolls ...int) Source {
	return &fixedSource{rolls: rolls}
}

// Outcome is the result of resolving one action. Dice holds the two raw
// die results when a check was rolled; Automatic marks actions that
// required no check and consumed no dice.
type Outcome struct {
	Dice      [2]int `json:"dice,omitempty"`
	RollTotal int    `json:"roll_total"`
	Threshold int    `json:"threshold"`
	Success   bool   `json:"success"`
	Automatic bool   `json:"automatic,omitempty"`
}

// AutomaticSuccess is the outcome of an action that required no skill
// check.
func AutomaticSuccess() Outcome {
	return Outcome{Success: true, Automatic: true}
}

// Resolver computes skill-check outcomes. It is the only consumer of the
// dice source, so turn resolution stays deterministic given a seed.
type Resolver struct {
	src Source
}

// NewResolver returns a resolver rolling from the given source.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve rolls 2d6, adds attribute and skill, and compares the total
// against the difficulty threshold. Attribute and skill values are
// expected in [0,5].
func (r *Resolver) Resolve(attribute, skill int, difficulty Difficulty) Outcome {
	d1 := r.src.Die()
	d2 := r.src.Die()
	threshold := difficulty.Threshold()
	total := d1 + d2 + attribute + skill
	return Outcome{
		Dice:      [2]int{d1, d2},
		RollTotal: total,
		Threshold: threshold,
		Success:   total >= threshold,
	}
}
