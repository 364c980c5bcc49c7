package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pipelineWorld(t *testing.T) *world.World {
	t.Helper()
	w := world.New(uuid.New())
	require.NoError(t, w.AddCharacter(&world.Character{
		ID:          "miller",
		Name:        "Vanessa Miller",
		Attributes:  world.Attributes{Might: 2, Agility: 2, Wits: 2, Empathy: 1},
		Skills:      map[string]int{"comtech": 1},
		Inventory:   []string{"multitool", "pistol", "flashlight"},
		Agenda:      "Get the job done and get paid.",
		Status:      world.Status{Health: "healthy", Stress: 1},
		CurrentZone: "medbay_b",
	}))
	require.NoError(t, w.AddZone(&world.Zone{
		ID:          "medbay_b",
		Name:        "Medical Bay B",
		Description: "A sterile white medical facility.",
		Exits: map[string]world.Exit{
			"north_door": {To: "corridor_3", Status: world.ExitLocked},
		},
		Objects: map[string]world.ZoneObject{
			"door_control_panel_north": {
				Name:   "door_control_panel_north",
				Status: "smashed",
				Properties: map[string]any{
					world.PropRequiredSkill: "comtech",
					world.PropDifficulty:    "moderate",
				},
				CanInteract: true,
			},
		},
	}))
	require.NoError(t, w.AddZone(&world.Zone{ID: "corridor_3", Name: "Corridor 3", Description: "A dim corridor."}))
	return w
}

func testEngine(t *testing.T, w *world.World, actor *MockActor, director *MockDirector, dice rules.Source) *Engine {
	t.Helper()
	if dice == nil {
		dice = rules.NewSeededSource(1)
	}
	return New(w, actor, director, rules.NewResolver(dice), rules.DefaultSkillTable(), testLogger())
}

func repairIntent() *feed.ActorResponse {
	return &feed.ActorResponse{
		Thoughts: "That panel is the way out.",
		Speech:   "On it, Commander.",
		Intent: feed.ActionIntent{
			Verb:      "REPAIR",
			Target:    "door_control_panel_north",
			Using:     "multitool",
			Speed:     feed.SpeedSlow,
			Rationale: "Fix the panel to unlock the door",
		},
	}
}

func TestAdvanceTurn_SuccessfulSkillCheck(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		return repairIntent(), nil
	}
	director := NewMockDirector()
	director.NarrateFunc = func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
		// Dice fixed at 4+3: total 7+2+1=10 meets the moderate threshold.
		assert.True(t, req.Outcome.Success)
		assert.Equal(t, 10, req.Outcome.RollTotal)
		assert.Equal(t, "comtech", req.Skill)
		assert.Equal(t, "wits", req.Attribute)
		return &feed.DirectorResult{
			Narration: "Sparks fly as Miller reroutes the damaged circuits. The panel chimes back to life.",
			Updates: feed.Patch{
				Zone: map[string]any{
					"objects.door_control_panel_north.status": "functional",
					"exits.north_door.status":                 "open",
				},
			},
		}, nil
	}

	e := testEngine(t, w, actor, director, rules.FixedSource(4, 3))
	result, err := e.AdvanceTurn(context.Background(), "Get that door open, Miller!")
	require.NoError(t, err)

	assert.Equal(t, 1, result.TurnNumber)
	assert.Equal(t, "miller", result.ActiveCharacter)
	assert.Contains(t, result.HelmetCamFeed, "chimes back to life")
	assert.Equal(t, "On it, Commander.", result.CharacterSpeech)
	assert.Len(t, result.StateChanges, 2)

	// World mutated and counter advanced exactly once.
	z, ok := w.Zone("medbay_b")
	require.True(t, ok)
	assert.Equal(t, world.ExitOpen, z.Exits["north_door"].Status)
	assert.Equal(t, 1, w.CommittedTurns())

	// Log carries commander, thoughts, speech, narration in order.
	log := w.Log()
	require.Len(t, log, 4)
	assert.Equal(t, feed.MessageCommander, log[0].Type)
	assert.Equal(t, feed.MessageActorThoughts, log[1].Type)
	assert.Equal(t, feed.MessageActorSpeech, log[2].Type)
	assert.Equal(t, feed.MessageDirectorNarration, log[3].Type)
	for _, e := range log {
		assert.Equal(t, 1, e.Turn)
	}
}

func TestAdvanceTurn_FailedCheckDeclinesUpdates(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		return repairIntent(), nil
	}
	director := NewMockDirector()
	director.NarrateFunc = func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
		// Dice fixed at 1+2: total 3+2+1=6 misses the threshold.
		assert.False(t, req.Outcome.Success)
		assert.Equal(t, 6, req.Outcome.RollTotal)
		return &feed.DirectorResult{
			Narration: "The multitool sparks against fried circuits. The panel stays dark.",
		}, nil
	}

	e := testEngine(t, w, actor, director, rules.FixedSource(1, 2))
	result, err := e.AdvanceTurn(context.Background(), "Try the panel.")
	require.NoError(t, err)

	// Failure narrated, nothing applied, turn still commits.
	assert.Empty(t, result.StateChanges)
	assert.Equal(t, 1, w.CommittedTurns())
	z, ok := w.Zone("medbay_b")
	require.True(t, ok)
	assert.Equal(t, "smashed", z.Objects["door_control_panel_north"].Status)
}

func TestAdvanceTurn_EmptyCommandRejectedBeforeIntent(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	director := NewMockDirector()
	e := testEngine(t, w, actor, director, nil)

	for _, cmd := range []string{"", "   "} {
		_, err := e.AdvanceTurn(context.Background(), cmd)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}

	assert.Equal(t, 0, actor.CallCount())
	assert.Equal(t, 0, director.CallCount())
	assert.Equal(t, 0, w.CommittedTurns())

	// Only validation-failure records in the log.
	log := w.Log()
	require.Len(t, log, 2)
	for _, e := range log {
		assert.Equal(t, feed.MessageSystem, e.Type)
	}
}

func TestAdvanceTurn_UnresolvableTargetStillCommits(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		return &feed.ActorResponse{
			Speech: "I don't see anything like that here.",
			Intent: feed.ActionIntent{Verb: "EXAMINE", Target: "escape_shuttle", Speed: feed.SpeedFast},
		}, nil
	}
	director := NewMockDirector()
	director.NarrateFunc = func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
		assert.False(t, req.CheckNeeded)
		assert.True(t, req.Outcome.Automatic)
		return &feed.DirectorResult{
			Narration: "Miller scans the bay, but there is no shuttle here.",
		}, nil
	}

	e := testEngine(t, w, actor, director, nil)
	result, err := e.AdvanceTurn(context.Background(), "Find the shuttle.")
	require.NoError(t, err)
	assert.Equal(t, 1, result.TurnNumber)
	assert.Equal(t, 1, w.CommittedTurns())
}

func TestAdvanceTurn_ActorTimeoutAbortsTurn(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	director := NewMockDirector()
	e := testEngine(t, w, actor, director, nil).WithCapabilityTimeout(10 * time.Millisecond)

	_, err := e.AdvanceTurn(context.Background(), "Do something.")
	var cerr *CapabilityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, PhaseIntent, cerr.Phase)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Counter unchanged, exactly one system-channel entry.
	assert.Equal(t, 0, w.CommittedTurns())
	assert.Equal(t, 0, director.CallCount())
	log := w.Log()
	require.Len(t, log, 1)
	assert.Equal(t, feed.MessageSystem, log[0].Type)
	assert.Contains(t, log[0].Content, "aborted")
}

func TestAdvanceTurn_DirectorFailureAbortsBeforeCommit(t *testing.T) {
	tests := []struct {
		name        string
		narrateFunc func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error)
	}{
		{
			name: "director error",
			narrateFunc: func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
				return nil, errors.New("model overloaded")
			},
		},
		{
			name: "empty narration",
			narrateFunc: func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
				return &feed.DirectorResult{
					Narration: "  ",
					Updates:   feed.Patch{Zone: map[string]any{"atmosphere": "calm"}},
				}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := pipelineWorld(t)
			actor := NewMockActor()
			director := NewMockDirector()
			director.NarrateFunc = tt.narrateFunc
			e := testEngine(t, w, actor, director, nil)

			_, err := e.AdvanceTurn(context.Background(), "Proceed.")
			var cerr *CapabilityError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, PhaseNarrate, cerr.Phase)

			// No partial commit: declared updates never reach the world.
			assert.Equal(t, 0, w.CommittedTurns())
			z, ok := w.Zone("medbay_b")
			require.True(t, ok)
			assert.Empty(t, z.Atmosphere)
			require.Len(t, w.Log(), 1)
		})
	}
}

func TestAdvanceTurn_ToolNotInInventory(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		resp := repairIntent()
		resp.Intent.Using = "plasma_cutter"
		return resp, nil
	}
	director := NewMockDirector()
	e := testEngine(t, w, actor, director, nil)

	_, err := e.AdvanceTurn(context.Background(), "Cut the door open.")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Reason, "plasma_cutter")
	assert.Equal(t, 0, w.CommittedTurns())
	assert.Equal(t, 0, director.CallCount())
}

func TestAdvanceTurn_MalformedIntentIsCapabilityFailure(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		return &feed.ActorResponse{
			Intent: feed.ActionIntent{Verb: "", Target: "north_door", Speed: feed.SpeedFast},
		}, nil
	}
	e := testEngine(t, w, actor, NewMockDirector(), nil)

	_, err := e.AdvanceTurn(context.Background(), "Go.")
	var cerr *CapabilityError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, PhaseIntent, cerr.Phase)
	assert.Equal(t, 0, w.CommittedTurns())
}

type failingStore struct{ err error }

func (s *failingStore) SaveWorld(ctx context.Context, w *world.World) error { return s.err }

func TestAdvanceTurn_PersistFailureIsCommitError(t *testing.T) {
	w := pipelineWorld(t)
	e := testEngine(t, w, NewMockActor(), NewMockDirector(), nil).
		WithStore(&failingStore{err: fmt.Errorf("redis gone")})

	_, err := e.AdvanceTurn(context.Background(), "Proceed.")
	var cmErr *CommitError
	require.ErrorAs(t, err, &cmErr)

	// Distinct from a capability failure.
	var cerr *CapabilityError
	assert.False(t, errors.As(err, &cerr))
}

func TestAdvanceTurn_CountersContiguousAcrossMixedOutcomes(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	director := NewMockDirector()
	e := testEngine(t, w, actor, director, nil)

	fail := false
	actor.DecideFunc = func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
		if fail {
			return nil, errors.New("uplink lost")
		}
		return repairIntent(), nil
	}

	var turns []int
	for i := 0; i < 6; i++ {
		fail = i%2 == 1
		result, err := e.AdvanceTurn(context.Background(), "Proceed.")
		if fail {
			require.Error(t, err)
			continue
		}
		require.NoError(t, err)
		turns = append(turns, result.TurnNumber)
	}

	assert.Equal(t, []int{1, 2, 3}, turns)
	assert.Equal(t, 3, w.CommittedTurns())

	// Committed results are strictly increasing and gap-free.
	for i, r := range w.Results() {
		assert.Equal(t, i+1, r.TurnNumber)
	}
}

func TestAdvanceTurn_SuccessSetExactlyOnce(t *testing.T) {
	w := pipelineWorld(t)
	actor := NewMockActor()
	director := NewMockDirector()

	var seen *feed.DirectorResult
	director.NarrateFunc = func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
		r := &feed.DirectorResult{Narration: "Miller studies the panel."}
		// The capability never sets success; the pipeline does, once.
		assert.Nil(t, r.Success)
		seen = r
		return r, nil
	}

	e := testEngine(t, w, actor, director, rules.FixedSource(4, 3))
	_, err := e.AdvanceTurn(context.Background(), "Check the panel.")
	require.NoError(t, err)
	require.NotNil(t, seen.Success)
	assert.True(t, *seen.Success)
}
