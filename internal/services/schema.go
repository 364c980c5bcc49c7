package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rsalas72/away-team/pkg/feed"
)

// JSON Schemas for the structured responses the LLM roles must return.
// Validation happens here, before anything downstream trusts the payload.

const actorResponseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["action_intent"],
  "properties": {
    "thoughts": {"type": "string"},
    "speech": {"type": "string"},
    "action_intent": {
      "type": "object",
      "required": ["verb", "target"],
      "properties": {
        "verb": {"type": "string", "minLength": 1},
        "target": {"type": "string", "minLength": 1},
        "using": {"type": "string"},
        "speed": {"type": "string", "enum": ["slow", "fast"]},
        "rationale": {"type": "string"}
      }
    }
  }
}`

const directorResponseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["narration"],
  "properties": {
    "narration": {"type": "string", "minLength": 1},
    "world_updates": {
      "type": "object",
      "properties": {
        "zone": {"type": "object"},
        "character": {"type": "object"}
      },
      "additionalProperties": false
    }
  }
}`

var (
	actorSchema    = jsonschema.MustCompileString("actor_response.json", actorResponseSchema)
	directorSchema = jsonschema.MustCompileString("director_response.json", directorResponseSchema)
)

// extractJSON strips markdown code fences and any prose surrounding the
// first top-level JSON object in an LLM completion.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// validateAgainst unmarshals raw JSON and checks it against a compiled schema
func validateAgainst(schema *jsonschema.Schema, rawJSON string) error {
	var doc any
	if err := json.Unmarshal([]byte(rawJSON), &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ParseActorResponse extracts, validates and decodes a structured actor
// response from a raw LLM completion.
func ParseActorResponse(raw string) (*feed.ActorResponse, error) {
	rawJSON, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	if err := validateAgainst(actorSchema, rawJSON); err != nil {
		return nil, err
	}

	var resp feed.ActorResponse
	if err := json.Unmarshal([]byte(rawJSON), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode actor response: %w", err)
	}
	if resp.Intent.Speed == "" {
		resp.Intent.Speed = feed.SpeedSlow
	}
	return &resp, nil
}

// ParseDirectorResponse extracts, validates and decodes a structured
// director response from a raw LLM completion.
func ParseDirectorResponse(raw string) (*feed.DirectorResult, error) {
	rawJSON, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	if err := validateAgainst(directorSchema, rawJSON); err != nil {
		return nil, err
	}

	var payload struct {
		Narration    string     `json:"narration"`
		WorldUpdates feed.Patch `json:"world_updates"`
	}
	if err := json.Unmarshal([]byte(rawJSON), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode director response: %w", err)
	}

	return &feed.DirectorResult{
		Narration: payload.Narration,
		Updates:   payload.WorldUpdates,
	}, nil
}
