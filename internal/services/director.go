package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rsalas72/away-team/internal/engine"
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/prompts"
)

// LLMDirector implements the Director capability over an LLMService. The
// resolved outcome is handed to the model as fact; the model narrates it
// and declares world updates, but never decides success or failure.
type LLMDirector struct {
	llm    LLMService
	logger *slog.Logger
}

func NewLLMDirector(llm LLMService, logger *slog.Logger) *LLMDirector {
	return &LLMDirector{
		llm:    llm,
		logger: logger,
	}
}

// Narrate asks the model to describe the resolved outcome.
func (d *LLMDirector) Narrate(ctx context.Context, req engine.DirectorRequest) (*feed.DirectorResult, error) {
	messages, err := prompts.DirectorMessages(prompts.DirectorContext{
		Character:   req.Character,
		Zone:        req.Zone,
		Intent:      req.Intent,
		CheckNeeded: req.CheckNeeded,
		Skill:       req.Skill,
		Attribute:   req.Attribute,
		Difficulty:  req.Difficulty,
		Outcome:     req.Outcome,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build director prompt: %w", err)
	}

	raw, err := d.llm.GenerateResponse(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("director completion failed: %w", err)
	}

	result, err := ParseDirectorResponse(raw)
	if err != nil {
		d.logger.Warn("Director returned malformed response",
			"character", req.Character.Name,
			"error", err)
		return nil, fmt.Errorf("invalid director response: %w", err)
	}

	d.logger.Debug("Director narrated",
		"character", req.Character.Name,
		"updates", !result.Updates.IsEmpty())

	return result, nil
}
