package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

const (
	// DefaultCapabilityTimeout bounds each Actor/Director invocation.
	DefaultCapabilityTimeout = 60 * time.Second

	// persistTimeout bounds the save after a committed turn. The save
	// runs on a context detached from the request so an impatient
	// caller cannot interrupt a commit in progress.
	persistTimeout = 30 * time.Second
)

// Engine runs the turn pipeline: INTENT → INTERPRET → RESOLVE → NARRATE
// → COMMIT. Turns are strictly serialized; a new turn cannot enter
// INTENT while a prior turn's commit is outstanding.
type Engine struct {
	world      *world.World
	actor      ActorCapability
	director   DirectorCapability
	resolver   *rules.Resolver
	skills     *rules.SkillTable
	store      WorldStore
	logger     *slog.Logger
	capTimeout time.Duration

	mu sync.Mutex // serializes turns
}

// New creates an engine. The store is optional; without one, committed
// turns live only in memory.
func New(w *world.World, actor ActorCapability, director DirectorCapability, resolver *rules.Resolver, skills *rules.SkillTable, logger *slog.Logger) *Engine {
	return &Engine{
		world:      w,
		actor:      actor,
		director:   director,
		resolver:   resolver,
		skills:     skills,
		logger:     logger,
		capTimeout: DefaultCapabilityTimeout,
	}
}

// WithStore sets the persistence target for committed turns.
func (e *Engine) WithStore(store WorldStore) *Engine {
	e.store = store
	return e
}

// WithCapabilityTimeout overrides the per-invocation capability timeout.
func (e *Engine) WithCapabilityTimeout(d time.Duration) *Engine {
	if d > 0 {
		e.capTimeout = d
	}
	return e
}

// World returns the engine's world for read-only queries between turns.
func (e *Engine) World() *world.World {
	return e.world
}

// AdvanceTurn runs one full turn for the commander directive. On any
// failure before COMMIT the turn aborts: no patch is applied, the turn
// counter does not advance, and a single system-channel log entry
// records the reason.
func (e *Engine) AdvanceTurn(ctx context.Context, command string) (*feed.TurnResult, error) {
	if strings.TrimSpace(command) == "" {
		verr := &ValidationError{Reason: "commander directive cannot be empty"}
		e.world.AppendSystemEntry("Turn rejected: " + verr.Error())
		return nil, verr
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	turn := e.world.CurrentTurn()
	character, zone, err := e.world.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot world: %w", err)
	}

	log := e.logger.With("turn", turn, "character", character.ID)
	log.Info("Turn started", "command", command)

	// INTENT
	actorResp, err := e.runIntent(ctx, ActorRequest{Character: character, Zone: zone, Command: command})
	if err != nil {
		return nil, e.abort(log, err)
	}
	intent := actorResp.Intent

	if intent.Using != "" && !character.HasItem(intent.Using) {
		verr := &ValidationError{Reason: fmt.Sprintf("intent uses %q, which is not in %s's inventory", intent.Using, character.Name)}
		return nil, e.abort(log, verr)
	}

	// INTERPRET
	interp := Interpret(intent, zone)
	log.Debug("Intent interpreted",
		"verb", intent.Verb,
		"target", intent.Target,
		"target_kind", interp.Target,
		"check_needed", interp.CheckNeeded)

	// RESOLVE
	var outcome rules.Outcome
	var attribute string
	if interp.CheckNeeded {
		attribute = e.skills.Attribute(interp.Skill)
		outcome = e.resolver.Resolve(character.Attributes.Get(attribute), character.Skill(interp.Skill), interp.Difficulty)
		log.Info("Skill check resolved",
			"skill", interp.Skill,
			"attribute", attribute,
			"difficulty", interp.Difficulty,
			"roll_total", outcome.RollTotal,
			"threshold", outcome.Threshold,
			"success", outcome.Success)
	} else {
		outcome = rules.AutomaticSuccess()
	}

	// NARRATE
	directorResult, err := e.runNarrate(ctx, DirectorRequest{
		Character:   character,
		Zone:        zone,
		Intent:      intent,
		CheckNeeded: interp.CheckNeeded,
		Skill:       interp.Skill,
		Attribute:   attribute,
		Difficulty:  interp.Difficulty,
		Outcome:     outcome,
	})
	if err != nil {
		return nil, e.abort(log, err)
	}
	directorResult.CheckNeeded = interp.CheckNeeded
	directorResult.Skill = interp.Skill
	directorResult.Attribute = attribute
	directorResult.Difficulty = interp.Difficulty
	success := outcome.Success
	directorResult.Success = &success

	// COMMIT — runs to completion once entered.
	entries := []feed.LogEntry{
		feed.NewLogEntry(feed.MessageCommander, "Commander", command),
	}
	if actorResp.Thoughts != "" {
		entries = append(entries, feed.NewLogEntry(feed.MessageActorThoughts, character.Name, actorResp.Thoughts))
	}
	if actorResp.Speech != "" {
		entries = append(entries, feed.NewLogEntry(feed.MessageActorSpeech, character.Name, actorResp.Speech))
	}
	entries = append(entries, feed.NewLogEntry(feed.MessageDirectorNarration, "Director", directorResult.Narration))

	result, err := e.world.CommitTurn(world.CommitRequest{
		CharacterID: character.ID,
		Narration:   directorResult.Narration,
		Speech:      actorResp.Speech,
		Patch:       directorResult.Updates,
		Entries:     entries,
	})
	if err != nil {
		return nil, &CommitError{Err: err}
	}

	if e.store != nil {
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()
		if err := e.store.SaveWorld(pctx, e.world); err != nil {
			log.Error("World failed to save after commit", "error", err)
			return nil, &CommitError{Err: err}
		}
	}

	log.Info("Turn committed", "applied_fields", len(result.StateChanges))
	return result, nil
}

func (e *Engine) runIntent(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
	cctx, cancel := context.WithTimeout(ctx, e.capTimeout)
	defer cancel()

	resp, err := e.actor.Decide(cctx, req)
	if err != nil {
		return nil, &CapabilityError{Phase: PhaseIntent, Err: err}
	}
	if resp == nil {
		return nil, &CapabilityError{Phase: PhaseIntent, Err: fmt.Errorf("actor returned no response")}
	}
	if err := resp.Intent.Validate(); err != nil {
		return nil, &CapabilityError{Phase: PhaseIntent, Err: err}
	}
	return resp, nil
}

func (e *Engine) runNarrate(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
	cctx, cancel := context.WithTimeout(ctx, e.capTimeout)
	defer cancel()

	result, err := e.director.Narrate(cctx, req)
	if err != nil {
		return nil, &CapabilityError{Phase: PhaseNarrate, Err: err}
	}
	if result == nil || strings.TrimSpace(result.Narration) == "" {
		return nil, &CapabilityError{Phase: PhaseNarrate, Err: fmt.Errorf("director returned empty narration")}
	}
	return result, nil
}

// abort records the failure as a single system-channel entry and leaves
// the turn counter untouched.
func (e *Engine) abort(log *slog.Logger, err error) error {
	log.Warn("Turn aborted", "error", err)
	e.world.AppendSystemEntry("Turn aborted: " + err.Error())
	return err
}
