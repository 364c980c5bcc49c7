package services

import (
	"context"

	"github.com/rsalas72/away-team/pkg/chat"
)

// LLMService defines the interface for interacting with an LLM API
type LLMService interface {
	// InitModel initializes the LLM model on startup
	InitModel(ctx context.Context, modelName string) error

	// GenerateResponse generates a completion for the message sequence
	// and returns the raw text content
	GenerateResponse(ctx context.Context, messages []chat.Message) (string, error)
}
