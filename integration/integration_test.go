//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsalas72/away-team/internal/engine"
	"github.com/rsalas72/away-team/internal/handlers"
	"github.com/rsalas72/away-team/internal/services"
	"github.com/rsalas72/away-team/internal/storage"
	"github.com/rsalas72/away-team/pkg/chat"
	"github.com/rsalas72/away-team/pkg/feed"
	"github.com/rsalas72/away-team/pkg/rules"
	"github.com/rsalas72/away-team/pkg/world"
)

func TestMain(m *testing.M) {
	fmt.Printf("Running Away Team Integration Tests\n")
	os.Exit(m.Run())
}

// scriptedLLM returns actor and director completions in turn order.
// The actor prompt is detected by its response contract.
func scriptedLLM(t *testing.T, turns []scriptedTurn) *services.MockLLMAPI {
	t.Helper()

	mockLLM := services.NewMockLLMAPI()
	var actorCalls, directorCalls int
	mockLLM.GenerateResponseFunc = func(ctx context.Context, messages []chat.Message) (string, error) {
		require.NotEmpty(t, messages)
		if strings.Contains(messages[0].Content, "action_intent") {
			require.Less(t, actorCalls, len(turns), "unexpected actor call")
			resp := turns[actorCalls].actor
			actorCalls++
			return resp, nil
		}
		require.Less(t, directorCalls, len(turns), "unexpected director call")
		resp := turns[directorCalls].director
		directorCalls++
		return resp, nil
	}
	return mockLLM
}

type scriptedTurn struct {
	actor    string
	director string
}

func setupServer(t *testing.T, llm services.LLMService, dice rules.Source) (*httptest.Server, *world.World) {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := storage.NewRedisStorage("redis://"+mr.Addr(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	w, err := storage.LoadInitialWorld("../data", uuid.New())
	require.NoError(t, err)

	actor := services.NewLLMActor(llm, log)
	director := services.NewLLMDirector(llm, log)
	eng := engine.New(w, actor, director,
		rules.NewResolver(dice),
		rules.DefaultSkillTable(), log).
		WithStore(store)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/turn", handlers.NewTurnHandler(eng, log))
	mux.Handle("/v1/state", handlers.NewStateHandler(w, log))
	mux.Handle("/v1/world", handlers.NewWorldHandler(w, log))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, w
}

func postTurn(t *testing.T, server *httptest.Server, command string) (*feed.TurnResponse, int) {
	t.Helper()

	body, err := json.Marshal(feed.TurnRequest{Command: command})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/v1/turn", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var turnResp feed.TurnResponse
	require.NoError(t, json.Unmarshal(data, &turnResp))
	return &turnResp, resp.StatusCode
}

func TestEscapeFromMedbay(t *testing.T) {
	turns := []scriptedTurn{
		{
			actor: `{
				"thoughts": "The panel is scorched but the contacts look bridgeable.",
				"speech": "Working on the door panel now, Commander.",
				"action_intent": {"verb": "REPAIR", "target": "door_control_panel_north", "using": "multitool", "speed": "slow"}
			}`,
			director: `{
				"narration": "Miller bridges the scorched contacts. The panel hums and the north door seal releases with a hiss.",
				"world_updates": {
					"zone": {"objects.door_control_panel_north.status": "repaired", "exits.north.status": "open"},
					"character": {"stress": 2}
				}
			}`,
		},
		{
			actor: `{
				"thoughts": "Door's open. Move before something changes its mind.",
				"speech": "Door's open. Moving into the corridor.",
				"action_intent": {"verb": "MOVE", "target": "north", "speed": "fast"}
			}`,
			director: `{
				"narration": "Miller slips through the bulkhead into Corridor 3. The haze is thicker out here.",
				"world_updates": {
					"character": {"current_zone": "corridor_3"}
				}
			}`,
		},
	}

	// 4+3 beats the moderate threshold for the repair; the move needs no check
	server, w := setupServer(t, scriptedLLM(t, turns), rules.FixedSource(4, 3))

	// Turn 1: repair the panel
	resp, status := postTurn(t, server, "Get that door open.")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 1, resp.Result.TurnNumber)
	assert.Contains(t, resp.Result.HelmetCamFeed, "seal releases")
	assert.Equal(t, "open", resp.Result.StateChanges["zone.exits.north.status"])

	// Turn 2: move through
	resp, status = postTurn(t, server, "Move into the corridor.")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 2, resp.Result.TurnNumber)

	c, ok := w.Character("miller")
	require.True(t, ok)
	assert.Equal(t, "corridor_3", c.CurrentZone)

	// Feed shows both turns, gap-free
	stateResp, err := http.Get(server.URL + "/v1/state")
	require.NoError(t, err)
	defer func() { _ = stateResp.Body.Close() }()
	var state feed.StateResponse
	require.NoError(t, json.NewDecoder(stateResp.Body).Decode(&state))
	assert.Equal(t, 3, state.CurrentTurn)

	seen := map[int]bool{}
	for _, entry := range state.Log {
		seen[entry.Turn] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestFailedCheckLeavesWorldUntouched(t *testing.T) {
	turns := []scriptedTurn{
		{
			actor: `{
				"thoughts": "Try the panel.",
				"action_intent": {"verb": "REPAIR", "target": "door_control_panel_north", "using": "multitool", "speed": "slow"}
			}`,
			director: `{
				"narration": "Sparks snap across the contacts and the panel goes dark. The door stays sealed.",
				"world_updates": {
					"character": {"stress": 3}
				}
			}`,
		},
	}

	// 1+2 misses the moderate threshold
	server, w := setupServer(t, scriptedLLM(t, turns), rules.FixedSource(1, 2))

	resp, status := postTurn(t, server, "Get that door open.")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Result)

	z, ok := w.Zone("medbay_b")
	require.True(t, ok)
	assert.Equal(t, "locked", z.Exits["north"].Status)

	c, ok := w.Character("miller")
	require.True(t, ok)
	assert.Equal(t, 3, c.Status.Stress)
}

func TestMalformedActorResponseAbortsTurn(t *testing.T) {
	mockLLM := services.NewMockLLMAPI()
	mockLLM.SetResponse("I will repair the panel now.")

	server, w := setupServer(t, mockLLM, rules.FixedSource(4, 3))

	resp, status := postTurn(t, server, "Get that door open.")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, 0, w.CommittedTurns())
}
