package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsalas72/away-team/pkg/world"
)

func TestWorldHandler_Snapshot(t *testing.T) {
	w := handlerTestWorld(t)
	w.SetMission(world.MissionStatus{Objective: "Escape from Medical Bay B", Status: "active"})
	handler := NewWorldHandler(w, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/world", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response WorldResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, w.SessionID(), response.SessionID)
	assert.Equal(t, "Escape from Medical Bay B", response.Mission.Objective)
	assert.Equal(t, "miller", response.ActiveCharacter)
	assert.Equal(t, 1, response.CurrentTurn)

	require.Contains(t, response.Characters, "miller")
	assert.Equal(t, "Miller", response.Characters["miller"].Name)
	require.Contains(t, response.Zones, "medbay_b")
	assert.Equal(t, "locked", response.Zones["medbay_b"].Exits["north"].Status)
}

func TestWorldHandler_MethodNotAllowed(t *testing.T) {
	handler := NewWorldHandler(handlerTestWorld(t), testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/v1/world", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
