package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// MockStorage is an in-memory Storage implementation for testing, with
// injectable errors per operation.
type MockStorage struct {
	mu       sync.RWMutex
	profiles map[string]*npc.Profile
	state    *world.State
	gossip   []world.GossipEntry
	memories map[string][]world.MemoryEntry

	pingError   error
	saveError   error
	appendError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		profiles: make(map[string]*npc.Profile),
		memories: make(map[string][]world.MemoryEntry),
	}
}

// SetPingError configures Ping to fail with the given error.
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures SaveWorldState to fail with the given error.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// SetAppendError configures AppendGossip and AppendMemory to fail.
func (m *MockStorage) SetAppendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appendError = err
}

// AddProfile registers an authored profile.
func (m *MockStorage) AddProfile(p *npc.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
}

// SetWorldState seeds the persisted world state.
func (m *MockStorage) SetWorldState(s world.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &s
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) GetProfile(ctx context.Context, id string) (*npc.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *MockStorage) ListProfiles(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.profiles))
	for id := range m.profiles {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStorage) LoadWorldState(ctx context.Context) (*world.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil, nil
	}
	s := m.state.Clone()
	return &s, nil
}

func (m *MockStorage) SaveWorldState(ctx context.Context, s world.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	c := s.Clone()
	m.state = &c
	return nil
}

func (m *MockStorage) LoadGossip(ctx context.Context) ([]world.GossipEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]world.GossipEntry(nil), m.gossip...), nil
}

func (m *MockStorage) AppendGossip(ctx context.Context, entry world.GossipEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendError != nil {
		return m.appendError
	}
	m.gossip = append(m.gossip, entry)
	return nil
}

func (m *MockStorage) LoadMemories(ctx context.Context, npcID string) ([]world.MemoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]world.MemoryEntry(nil), m.memories[npcID]...), nil
}

func (m *MockStorage) AppendMemory(ctx context.Context, npcID string, entry world.MemoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendError != nil {
		return m.appendError
	}
	m.memories[npcID] = append(m.memories[npcID], entry)
	return nil
}
