package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// MemoryLedger keeps per-NPC memory lists, strictly partitioned by NPC id.
// Pure recency: no deduplication, no importance-based filtering.
type MemoryLedger struct {
	mu       sync.Mutex
	memories map[string][]world.MemoryEntry
	hydrated map[string]bool
	storage  services.Storage
	logger   *slog.Logger
}

// NewMemoryLedger creates an empty ledger. NPC lists hydrate lazily on
// first access.
func NewMemoryLedger(storage services.Storage, logger *slog.Logger) *MemoryLedger {
	return &MemoryLedger{
		memories: make(map[string][]world.MemoryEntry),
		hydrated: make(map[string]bool),
		storage:  storage,
		logger:   logger,
	}
}

// hydrate loads an NPC's persisted list once. Callers must hold mu. A
// failed load marks the list hydrated anyway so the in-memory copy stays
// authoritative instead of re-reading on every call.
func (m *MemoryLedger) hydrate(ctx context.Context, npcID string) {
	if m.hydrated[npcID] {
		return
	}
	m.hydrated[npcID] = true

	entries, err := m.storage.LoadMemories(ctx, npcID)
	if err != nil {
		m.logger.Warn("Failed to load memories, starting empty", "npc", npcID, "error", err)
		return
	}
	m.memories[npcID] = entries
}

// Recent returns the NPC's last n entries in chronological order, or an
// empty slice when the NPC remembers nothing.
func (m *MemoryLedger) Recent(ctx context.Context, npcID string, n int) []world.MemoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hydrate(ctx, npcID)
	return lastN(m.memories[npcID], n)
}

// Append adds an entry to the NPC's list and persists it. Persistence
// failure is swallowed.
func (m *MemoryLedger) Append(ctx context.Context, npcID string, entry world.MemoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hydrate(ctx, npcID)
	m.memories[npcID] = append(m.memories[npcID], entry)

	if err := m.storage.AppendMemory(ctx, npcID, entry); err != nil {
		m.logger.Warn("Failed to persist memory entry", "npc", npcID, "error", err)
	}
}
