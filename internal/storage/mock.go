package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/rsalas72/away-team/pkg/world"
)

// MockStorage is a mock implementation of the Storage interface for testing
type MockStorage struct {
	PingFunc      func(ctx context.Context) error
	CloseFunc     func() error
	SaveWorldFunc func(ctx context.Context, w *world.World) error
	LoadWorldFunc func(ctx context.Context, sessionID uuid.UUID) (*world.World, error)

	// Track calls for testing
	SaveWorldCalls []uuid.UUID
	LoadWorldCalls []uuid.UUID

	mu sync.Mutex // protects all fields above
}

var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{
		SaveWorldCalls: make([]uuid.UUID, 0),
		LoadWorldCalls: make([]uuid.UUID, 0),
	}
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

func (m *MockStorage) SaveWorld(ctx context.Context, w *world.World) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveWorldCalls = append(m.SaveWorldCalls, w.SessionID())
	if m.SaveWorldFunc != nil {
		return m.SaveWorldFunc(ctx, w)
	}
	return nil
}

func (m *MockStorage) LoadWorld(ctx context.Context, sessionID uuid.UUID) (*world.World, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadWorldCalls = append(m.LoadWorldCalls, sessionID)
	if m.LoadWorldFunc != nil {
		return m.LoadWorldFunc(ctx, sessionID)
	}
	return nil, nil
}

// SaveCount returns the number of SaveWorld calls in a thread-safe way
func (m *MockStorage) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SaveWorldCalls)
}
