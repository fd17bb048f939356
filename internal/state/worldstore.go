// Package state holds the process-wide mutable stores: the world state, the
// shared gossip ledger, and per-NPC memory. Each store serializes its
// read-modify-write commit cycle with a mutex so the in-memory update and
// the durability write stay atomic with respect to each other. Durability
// failures are logged and swallowed; the in-memory copy remains
// authoritative for the rest of the process lifetime.
package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// WorldStore owns the single mutable world state. All mutation goes through
// Commit; handlers only ever see snapshots.
type WorldStore struct {
	mu      sync.Mutex
	state   world.State
	storage services.Storage
	logger  *slog.Logger
}

// NewWorldStore creates a store seeded with the default state. Call Load to
// hydrate from durable storage.
func NewWorldStore(storage services.Storage, logger *slog.Logger) *WorldStore {
	return &WorldStore{
		state:   world.DefaultState(),
		storage: storage,
		logger:  logger,
	}
}

// Load hydrates the store from durable storage, keeping the default state
// when nothing is persisted or the record is unreadable.
func (s *WorldStore) Load(ctx context.Context) {
	persisted, err := s.storage.LoadWorldState(ctx)
	if err != nil {
		s.logger.Warn("Failed to load world state, using defaults", "error", err)
		return
	}
	if persisted == nil {
		s.logger.Info("No persisted world state, using defaults")
		return
	}

	s.mu.Lock()
	s.state = *persisted
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the current state.
func (s *WorldStore) Snapshot() world.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Commit applies mutate to the state and persists the result. A persistence
// failure is logged and swallowed: availability over durability.
func (s *WorldStore) Commit(ctx context.Context, mutate func(*world.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)

	if err := s.storage.SaveWorldState(ctx, s.state.Clone()); err != nil {
		s.logger.Warn("Failed to persist world state, in-memory state remains authoritative", "error", err)
	}
}
