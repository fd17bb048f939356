// Package orchestrator sequences a single NPC interaction: profile, context
// gathering, prompt assembly, generation, action execution, and heuristic
// side effects.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwebster45206/npc-engine/internal/actions"
	"github.com/jwebster45206/npc-engine/internal/rules"
	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/internal/state"
	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

// ServerErrorDialogue is the only thing a client sees when something
// unexpected breaks inside the pipeline.
const ServerErrorDialogue = "Server error while interacting."

// contextWindow is how many memories and gossip entries go into a prompt.
const contextWindow = 3

// Orchestrator wires the interaction pipeline together. All collaborators
// are injected; there is no ambient global state.
type Orchestrator struct {
	storage  services.Storage
	world    *state.WorldStore
	memories *state.MemoryLedger
	gossip   *state.GossipLedger
	gateway  *services.GenerationGateway
	executor *actions.Executor
	logger   *slog.Logger
}

// New creates an orchestrator.
func New(storage services.Storage, worldStore *state.WorldStore, memories *state.MemoryLedger, gossip *state.GossipLedger, gateway *services.GenerationGateway, executor *actions.Executor, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		storage:  storage,
		world:    worldStore,
		memories: memories,
		gossip:   gossip,
		gateway:  gateway,
		executor: executor,
		logger:   logger,
	}
}

// Interact runs the full pipeline for one player utterance. It never
// panics through to the caller: any internal failure degrades to the
// generic server-error response.
func (o *Orchestrator) Interact(ctx context.Context, npcID, playerText string) (resp *interaction.Response) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Interaction pipeline panic", "npc", npcID, "panic", r)
			resp = &interaction.Response{
				Dialogue: ServerErrorDialogue,
				Metadata: map[string]any{},
			}
		}
	}()

	profile := o.loadProfile(ctx, npcID)

	snapshot := o.world.Snapshot()
	memories := o.memories.Recent(ctx, npcID, contextWindow)
	gossip := o.gossip.RecentForNPC(profile, contextWindow)

	p := prompt.Assemble(profile, snapshot, memories, gossip, playerText)

	resp = o.gateway.Generate(ctx, &p)
	if resp == nil {
		resp = &interaction.Response{}
	}
	resp.Normalize()

	if resp.Action != nil {
		actx := actions.Context{NPC: profile, World: o.world}
		if err := o.executor.Execute(ctx, resp.Action, actx); err != nil {
			// Action failure is non-fatal; the dialogue still ships.
			o.logger.Warn("Action rejected", "npc", npcID, "type", resp.Action.Type, "error", err)
			resp.ActionError = err.Error()
		}
	}

	o.applyRules(ctx, profile, playerText)

	return resp
}

// loadProfile resolves the NPC's profile, degrading to the synthetic
// placeholder when the profile is absent or unreadable. The pipeline never
// fails solely because a profile could not be loaded.
func (o *Orchestrator) loadProfile(ctx context.Context, npcID string) *npc.Profile {
	profile, err := o.storage.GetProfile(ctx, npcID)
	if err != nil {
		o.logger.Warn("Profile unreadable, using placeholder", "npc", npcID, "error", err)
		return npc.Placeholder(npcID)
	}
	if profile == nil {
		o.logger.Debug("Profile not found, using placeholder", "npc", npcID)
		return npc.Placeholder(npcID)
	}
	return profile
}

// applyRules records the side effects of the keyword heuristics.
func (o *Orchestrator) applyRules(ctx context.Context, profile *npc.Profile, playerText string) {
	for _, effect := range rules.Evaluate(profile, playerText, time.Now()) {
		if effect.Memory != nil {
			o.memories.Append(ctx, profile.ID, *effect.Memory)
		}
		if effect.Gossip != nil {
			o.gossip.Append(ctx, *effect.Gossip)
		}
	}
}
