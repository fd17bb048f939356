// Package rules holds the keyword heuristics that make the world react to
// what players say. Each rule is a named function from an utterance to
// zero-or-more side-effect commands, kept out of the orchestrator so the
// rules are independently testable.
package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

const (
	helpMemoryImportance = 7
	helpGossipImportance = 5
)

// Effect is one side-effect command produced by a rule: a memory to record
// for the addressed NPC, a gossip entry for the shared ledger, or both.
type Effect struct {
	Memory *world.MemoryEntry
	Gossip *world.GossipEntry
}

// Evaluate runs all rules against the player's utterance and returns the
// side effects to apply.
func Evaluate(p *npc.Profile, utterance string, now time.Time) []Effect {
	var effects []Effect

	if effect, ok := helpRule(p, utterance, now); ok {
		effects = append(effects, effect)
	}

	return effects
}

// helpRule fires when the player asks for help, in any casing. The NPC
// remembers the plea and word of it spreads to the gossip ledger.
func helpRule(p *npc.Profile, utterance string, now time.Time) (Effect, bool) {
	if !strings.Contains(strings.ToLower(utterance), "help") {
		return Effect{}, false
	}

	return Effect{
		Memory: &world.MemoryEntry{
			Text:       utterance,
			Timestamp:  now,
			Importance: helpMemoryImportance,
		},
		Gossip: &world.GossipEntry{
			ID:         uuid.NewString(),
			Text:       fmt.Sprintf("%s heard: %q", p.Name, utterance),
			Timestamp:  now,
			Importance: helpGossipImportance,
		},
	}, true
}
