package engine

import (
	"context"
	"sync"

	"github.com/rsalas72/away-team/pkg/feed"
)

// MockActor is a mock ActorCapability for tests.
type MockActor struct {
	DecideFunc func(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error)

	// Track calls for testing
	DecideCalls []ActorRequest

	mu sync.Mutex
}

// NewMockActor creates a mock actor returning a safe default intent.
func NewMockActor() *MockActor {
	return &MockActor{DecideCalls: make([]ActorRequest, 0)}
}

func (m *MockActor) Decide(ctx context.Context, req ActorRequest) (*feed.ActorResponse, error) {
	m.mu.Lock()
	m.DecideCalls = append(m.DecideCalls, req)
	m.mu.Unlock()

	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, req)
	}
	return &feed.ActorResponse{
		Thoughts: "Better take this slow.",
		Speech:   "Copy that, Commander.",
		Intent: feed.ActionIntent{
			Verb:      "EXAMINE",
			Target:    "door_control_panel_north",
			Speed:     feed.SpeedSlow,
			Rationale: "Assess before acting",
		},
	}, nil
}

// CallCount returns how many times Decide was invoked.
func (m *MockActor) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DecideCalls)
}

// MockDirector is a mock DirectorCapability for tests.
type MockDirector struct {
	NarrateFunc func(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error)

	// Track calls for testing
	NarrateCalls []DirectorRequest

	mu sync.Mutex
}

// NewMockDirector creates a mock director returning plain narration and
// no updates.
func NewMockDirector() *MockDirector {
	return &MockDirector{NarrateCalls: make([]DirectorRequest, 0)}
}

func (m *MockDirector) Narrate(ctx context.Context, req DirectorRequest) (*feed.DirectorResult, error) {
	m.mu.Lock()
	m.NarrateCalls = append(m.NarrateCalls, req)
	m.mu.Unlock()

	if m.NarrateFunc != nil {
		return m.NarrateFunc(ctx, req)
	}
	return &feed.DirectorResult{
		Narration: "The character carries out the action without incident.",
	}, nil
}

// CallCount returns how many times Narrate was invoked.
func (m *MockDirector) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.NarrateCalls)
}
