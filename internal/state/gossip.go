package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// GossipLedger is the single shared, append-only rumor feed. Reads are
// gated by the Gossiper capability trait.
type GossipLedger struct {
	mu      sync.Mutex
	entries []world.GossipEntry
	storage services.Storage
	logger  *slog.Logger
}

// NewGossipLedger creates an empty ledger. Call Load to hydrate.
func NewGossipLedger(storage services.Storage, logger *slog.Logger) *GossipLedger {
	return &GossipLedger{
		storage: storage,
		logger:  logger,
	}
}

// Load hydrates the ledger from durable storage. An unreadable record
// leaves the ledger empty rather than failing startup.
func (g *GossipLedger) Load(ctx context.Context) {
	entries, err := g.storage.LoadGossip(ctx)
	if err != nil {
		g.logger.Warn("Failed to load gossip ledger, starting empty", "error", err)
		return
	}

	g.mu.Lock()
	g.entries = entries
	g.mu.Unlock()
}

// Recent returns the last n entries in chronological order.
func (g *GossipLedger) Recent(n int) []world.GossipEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	return lastN(g.entries, n)
}

// RecentForNPC returns Recent(n) when the profile carries the Gossiper
// trait, and an empty slice otherwise. Trait, not role: a guard who
// gossips hears gossip.
func (g *GossipLedger) RecentForNPC(p *npc.Profile, n int) []world.GossipEntry {
	if p == nil || !p.HasTrait(npc.TraitGossiper) {
		return []world.GossipEntry{}
	}
	return g.Recent(n)
}

// Append adds an entry and persists it. Persistence failure is swallowed.
func (g *GossipLedger) Append(ctx context.Context, entry world.GossipEntry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entries = append(g.entries, entry)

	if err := g.storage.AppendGossip(ctx, entry); err != nil {
		g.logger.Warn("Failed to persist gossip entry", "error", err)
	}
}

func lastN[T any](entries []T, n int) []T {
	if n <= 0 || len(entries) == 0 {
		return []T{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]T, n)
	copy(out, entries[len(entries)-n:])
	return out
}
