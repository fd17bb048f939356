// Package prompt assembles generation requests for the LLM backend.
// Assembly is a pure function of its inputs: no I/O, no clock, no globals.
package prompt

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/world"
)

// Prompt is the generation request sent to the backend. The field names
// match the backend's wire contract.
type Prompt struct {
	System string `json:"system"`
	Seed   string `json:"seed"`
	Input  string `json:"input"`
}

const (
	noMemoriesText = "No recent memories."
	noGossipText   = "No gossip nearby."
)

// Assemble renders the persona, output contract, safety rule, world context,
// memories, gossip and player utterance into a Prompt. The ordering of those
// blocks is a contract with the generation backend; downstream prompting
// depends on it.
func Assemble(p *npc.Profile, ws world.State, memories []world.MemoryEntry, gossip []world.GossipEntry, playerText string) Prompt {
	var sb strings.Builder

	// Persona
	fmt.Fprintf(&sb, "You are %s, %s.\n", p.Name, p.Role)
	fmt.Fprintf(&sb, "Personality: %s.\n", p.Personality)
	fmt.Fprintf(&sb, "Goals: %s.\n", joinOr(p.Goals, ", "))
	fmt.Fprintf(&sb, "Core knowledge: %s.\n", joinOr(p.Knowledge, "; "))
	sb.WriteString("\n")

	// Output contract
	sb.WriteString("You must ALWAYS output valid JSON only, with keys: dialogue (string), action (object|null), metadata (object).\n")
	sb.WriteString("Do not output any extra commentary or explanation outside the JSON.\n")
	sb.WriteString("\n")

	// Safety rule
	sb.WriteString("Safety rules: refuse to help the player with real-world illegal activity, exploitation, or cheats. If refusing, output dialogue that politely refuses and set action=null.\n")
	sb.WriteString("\n")

	// World context
	fmt.Fprintf(&sb, "Game state: time=%s, weather=%s, location=%s.\n", ws.Time, ws.Weather, ws.Location)
	fmt.Fprintf(&sb, "Recent memories:\n%s\n", renderMemories(memories))
	fmt.Fprintf(&sb, "Gossip:\n%s", renderGossip(gossip))

	return Prompt{
		System: sb.String(),
		Seed:   p.GreetingSeed,
		Input:  playerText,
	}
}

func joinOr(items []string, sep string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, sep)
}

func renderMemories(memories []world.MemoryEntry) string {
	if len(memories) == 0 {
		return noMemoriesText
	}
	lines := make([]string, 0, len(memories))
	for _, m := range memories {
		lines = append(lines, "- "+m.Text)
	}
	return strings.Join(lines, "\n")
}

func renderGossip(gossip []world.GossipEntry) string {
	if len(gossip) == 0 {
		return noGossipText
	}
	lines := make([]string, 0, len(gossip))
	for _, g := range gossip {
		lines = append(lines, "- "+g.Text)
	}
	return strings.Join(lines, "\n")
}
