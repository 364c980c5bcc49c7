package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficulty_Threshold(t *testing.T) {
	tests := []struct {
		name       string
		difficulty Difficulty
		expected   int
	}{
		{"trivial", DifficultyTrivial, 6},
		{"easy", DifficultyEasy, 8},
		{"moderate", DifficultyModerate, 10},
		{"hard", DifficultyHard, 12},
		{"extreme", DifficultyExtreme, 14},
		{"unknown tier falls back to moderate", Difficulty("impossible"), 10},
		{"empty tier falls back to moderate", Difficulty(""), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.difficulty.Threshold())
		})
	}
}

func TestResolver_DeterministicWithSeed(t *testing.T) {
	// Same seed must reproduce the same roll sequence.
	a := NewResolver(NewSeededSource(42))
	b := NewResolver(NewSeededSource(42))

	for i := 0; i < 20; i++ {
		oa := a.Resolve(2, 1, DifficultyModerate)
		ob := b.Resolve(2, 1, DifficultyModerate)
		assert.Equal(t, oa, ob, "roll %d diverged", i)
		assert.GreaterOrEqual(t, oa.Dice[0], 1)
		assert.LessOrEqual(t, oa.Dice[0], 6)
		assert.GreaterOrEqual(t, oa.Dice[1], 1)
		assert.LessOrEqual(t, oa.Dice[1], 6)
	}
}

func TestResolver_SuccessMatchesThreshold(t *testing.T) {
	r := NewResolver(NewSeededSource(7))
	for _, d := range []Difficulty{DifficultyTrivial, DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExtreme} {
		for i := 0; i < 50; i++ {
			o := r.Resolve(i%6, (i+3)%6, d)
			assert.Equal(t, o.RollTotal >= d.Threshold(), o.Success)
			assert.Equal(t, o.Dice[0]+o.Dice[1]+i%6+(i+3)%6, o.RollTotal)
		}
	}
}

func TestResolver_MedbayPanelScenarios(t *testing.T) {
	// Character with wits=2, comtech=1 against a moderate check (threshold 10).
	tests := []struct {
		name        string
		dice        []int
		wantTotal   int
		wantSuccess bool
	}{
		{"dice 4+3 total 10 succeeds", []int{4, 3}, 10, true},
		{"dice 1+2 total 6 fails", []int{1, 2}, 6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(FixedSource(tt.dice...))
			o := r.Resolve(2, 1, DifficultyModerate)
			assert.Equal(t, tt.wantTotal, o.RollTotal)
			assert.Equal(t, tt.wantSuccess, o.Success)
			assert.Equal(t, 10, o.Threshold)
			assert.False(t, o.Automatic)
		})
	}
}

func TestAutomaticSuccess_ConsumesNoDice(t *testing.T) {
	o := AutomaticSuccess()
	assert.True(t, o.Success)
	assert.True(t, o.Automatic)
	assert.Zero(t, o.Dice[0])
	assert.Zero(t, o.Dice[1])
	assert.Zero(t, o.RollTotal)
}
