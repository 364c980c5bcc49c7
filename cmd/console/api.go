package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/internal/handlers"
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/world"
)

// WorldSnapshot mirrors the GET /v1/world response
type WorldSnapshot struct {
	SessionID       uuid.UUID                   `json:"session_id"`
	Mission         world.MissionStatus         `json:"mission"`
	ActiveCharacter string                      `json:"active_character"`
	Characters      map[string]*world.Character `json:"characters"`
	Zones           map[string]*world.Zone      `json:"zones"`
	CurrentTurn     int                         `json:"current_turn"`
	Error           string                      `json:"error,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	// Degraded still serves turns from memory
	return resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusServiceUnavailable
}

func getWorld(client *http.Client, baseURL string) (*WorldSnapshot, error) {
	resp, err := client.Get(baseURL + "/v1/world")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp handlers.WorldResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get world: %s", errorResp.Error)
	}

	var snapshot WorldSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse world response: %w", err)
	}
	return &snapshot, nil
}

func getState(client *http.Client, baseURL string) (*feed.StateResponse, error) {
	resp, err := client.Get(baseURL + "/v1/state")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp feed.StateResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get state: %s", errorResp.Error)
	}

	var state feed.StateResponse
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state response: %w", err)
	}
	return &state, nil
}

func submitTurn(client *http.Client, baseURL string, command string) (*feed.TurnResponse, error) {
	turnReq := feed.TurnRequest{Command: command}

	jsonData, err := json.Marshal(turnReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/turn",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp feed.TurnResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("turn failed: %s", errorResp.Error)
	}

	var turnResp feed.TurnResponse
	if err := json.Unmarshal(body, &turnResp); err != nil {
		return nil, fmt.Errorf("failed to parse turn response: %w", err)
	}

	return &turnResp, nil
}
