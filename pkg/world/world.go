// Package world holds the mutable world state and the entry types recorded
// in the memory and gossip ledgers.
package world

import "time"

// Player is the player's slice of the world state.
type Player struct {
	Name       string   `json:"name"`
	Reputation string   `json:"reputation"`
	Inventory  []string `json:"inventory"`
}

// State is the single shared world state. It is mutated only through the
// world store's commit cycle, never by direct field access from handlers.
type State struct {
	Time         string   `json:"time"`
	Weather      string   `json:"weather"`
	Location     string   `json:"location"`
	Player       Player   `json:"player"`
	ActiveQuests []string `json:"activeQuests"`
}

// DefaultState is the hard-coded state used when durable storage is absent
// or corrupt at startup.
func DefaultState() State {
	return State{
		Time:     "evening",
		Weather:  "clear",
		Location: "tavern",
		Player: Player{
			Name:       "Arin",
			Reputation: "neutral",
			Inventory:  []string{},
		},
		ActiveQuests: []string{},
	}
}

// Clone returns a deep copy, so snapshots handed to the prompt assembler
// cannot alias the live state.
func (s State) Clone() State {
	c := s
	c.Player.Inventory = append([]string(nil), s.Player.Inventory...)
	c.ActiveQuests = append([]string(nil), s.ActiveQuests...)
	return c
}

// MemoryEntry is a short text snippet an NPC remembers about the player.
// Entries are append-only; insertion order is chronological order.
type MemoryEntry struct {
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"ts"`
	Importance int       `json:"importance"`
}

// GossipEntry is a world-level rumor visible to NPCs with the Gossiper trait.
type GossipEntry struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"ts"`
	Importance int       `json:"importance"`
}
