package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rsalas72/away-team/internal/engine"
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/prompts"
)

// LLMActor implements the Actor capability over an LLMService. It builds
// the actor prompt, calls the model, and validates the structured reply.
type LLMActor struct {
	llm    LLMService
	logger *slog.Logger
}

func NewLLMActor(llm LLMService, logger *slog.Logger) *LLMActor {
	return &LLMActor{
		llm:    llm,
		logger: logger,
	}
}

// Decide asks the model for the character's action this turn.
func (a *LLMActor) Decide(ctx context.Context, req engine.ActorRequest) (*feed.ActorResponse, error) {
	messages, err := prompts.ActorMessages(prompts.ActorContext{
		Character: req.Character,
		Zone:      req.Zone,
		Command:   req.Command,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build actor prompt: %w", err)
	}

	raw, err := a.llm.GenerateResponse(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("actor completion failed: %w", err)
	}

	resp, err := ParseActorResponse(raw)
	if err != nil {
		a.logger.Warn("Actor returned malformed response",
			"character", req.Character.Name,
			"error", err)
		return nil, fmt.Errorf("invalid actor response: %w", err)
	}

	a.logger.Debug("Actor decided",
		"character", req.Character.Name,
		"verb", resp.Intent.Verb,
		"target", resp.Intent.Target)

	return resp, nil
}
