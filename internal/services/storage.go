package services

import (
	"context"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// HealthChecker defines basic health check capabilities.
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities.
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage is the durability boundary for world state, gossip, per-NPC
// memory, and the read-only NPC profile source.
type Storage interface {
	HealthChecker
	Closer

	// GetProfile returns the authored profile for an NPC id.
	// Returns (nil, nil) when no profile exists for the id.
	GetProfile(ctx context.Context, id string) (*npc.Profile, error)

	// ListProfiles returns the ids of all authored profiles.
	ListProfiles(ctx context.Context) ([]string, error)

	// LoadWorldState retrieves the persisted world state.
	// Returns (nil, nil) when no state has been persisted yet.
	LoadWorldState(ctx context.Context) (*world.State, error)

	// SaveWorldState persists the world state wholesale.
	SaveWorldState(ctx context.Context, s world.State) error

	// LoadGossip retrieves the full gossip ledger in insertion order.
	LoadGossip(ctx context.Context) ([]world.GossipEntry, error)

	// AppendGossip appends one entry to the durable gossip ledger.
	AppendGossip(ctx context.Context, entry world.GossipEntry) error

	// LoadMemories retrieves an NPC's memory list in insertion order.
	LoadMemories(ctx context.Context, npcID string) ([]world.MemoryEntry, error)

	// AppendMemory appends one entry to an NPC's durable memory list.
	AppendMemory(ctx context.Context, npcID string, entry world.MemoryEntry) error
}
