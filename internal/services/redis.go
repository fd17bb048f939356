package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

const (
	worldStateKey   = "worldstate"
	gossipKey       = "gossip"
	memoryKeyPrefix = "memory:"
)

// RedisStorage implements Storage using Redis for dynamic state (world
// state, gossip, memory) and the filesystem for authored NPC profiles.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance.
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// Profile operations (filesystem-backed, read-only)

// GetProfile reads <dataDir>/npcs/<id>.json, falling back to <id>.yaml.
// A missing file is a distinguishable miss, not an error.
func (r *RedisStorage) GetProfile(ctx context.Context, id string) (*npc.Profile, error) {
	if !npc.IsValidID(id) {
		return nil, fmt.Errorf("invalid npc id %q", id)
	}

	base := filepath.Join(r.dataDir, "npcs", id)

	if data, err := os.ReadFile(base + ".json"); err == nil {
		return decodeProfile(id, data, false)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read profile %s: %w", id, err)
	}

	if data, err := os.ReadFile(base + ".yaml"); err == nil {
		return decodeProfile(id, data, true)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read profile %s: %w", id, err)
	}

	return nil, nil
}

func decodeProfile(id string, data []byte, isYAML bool) (*npc.Profile, error) {
	var p npc.Profile
	if isYAML {
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
		}
	} else {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
		}
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.Name == "" {
		p.Name = id
	}
	return &p, nil
}

func (r *RedisStorage) ListProfiles(ctx context.Context) ([]string, error) {
	npcsDir := filepath.Join(r.dataDir, "npcs")
	ids := make([]string, 0)

	err := filepath.WalkDir(npcsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".json" && ext != ".yaml" {
			return nil
		}
		id := strings.TrimSuffix(filepath.Base(path), ext)
		if npc.IsValidID(id) {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	sort.Strings(ids)
	return ids, nil
}

// World state operations (Redis-backed, single JSON record)

func (r *RedisStorage) LoadWorldState(ctx context.Context) (*world.State, error) {
	data, err := r.client.Get(ctx, worldStateKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load world state: %w", err)
	}

	var s world.State
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world state: %w", err)
	}
	return &s, nil
}

func (r *RedisStorage) SaveWorldState(ctx context.Context, s world.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal world state: %w", err)
	}
	if err := r.client.Set(ctx, worldStateKey, string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to save world state: %w", err)
	}
	return nil
}

// Gossip operations (Redis list, append-only)

func (r *RedisStorage) LoadGossip(ctx context.Context) ([]world.GossipEntry, error) {
	items, err := r.client.LRange(ctx, gossipKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load gossip: %w", err)
	}

	entries := make([]world.GossipEntry, 0, len(items))
	for _, item := range items {
		var e world.GossipEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			r.logger.Warn("Skipping malformed gossip entry", "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *RedisStorage) AppendGossip(ctx context.Context, entry world.GossipEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal gossip entry: %w", err)
	}
	if err := r.client.RPush(ctx, gossipKey, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to append gossip: %w", err)
	}
	return nil
}

// Memory operations (one Redis list per NPC, append-only)

func (r *RedisStorage) LoadMemories(ctx context.Context, npcID string) ([]world.MemoryEntry, error) {
	items, err := r.client.LRange(ctx, memoryKeyPrefix+npcID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load memories for %s: %w", npcID, err)
	}

	entries := make([]world.MemoryEntry, 0, len(items))
	for _, item := range items {
		var e world.MemoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			r.logger.Warn("Skipping malformed memory entry", "npc", npcID, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *RedisStorage) AppendMemory(ctx context.Context, npcID string, entry world.MemoryEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal memory entry: %w", err)
	}
	if err := r.client.RPush(ctx, memoryKeyPrefix+npcID, string(data)).Err(); err != nil {
		return fmt.Errorf("failed to append memory for %s: %w", npcID, err)
	}
	return nil
}
