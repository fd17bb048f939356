package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/internal/actions"
	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/internal/state"
	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fixture struct {
	storage  *services.MockStorage
	llm      *services.MockLLMAPI
	world    *state.WorldStore
	memories *state.MemoryLedger
	gossip   *state.GossipLedger
	orch     *Orchestrator
}

func setup(t *testing.T) *fixture {
	t.Helper()

	logger := testLogger()
	storage := services.NewMockStorage()
	storage.AddProfile(&npc.Profile{
		ID:          "mira",
		Name:        "Mira",
		Role:        "barkeep",
		Personality: "warm but nosy",
		Traits:      []string{npc.TraitGossiper},
		Goals:       []string{"keep the tavern lively"},
		Knowledge:   []string{"everyone's business"},
	})

	llm := services.NewMockLLMAPI()
	worldStore := state.NewWorldStore(storage, logger)
	memories := state.NewMemoryLedger(storage, logger)
	gossip := state.NewGossipLedger(storage, logger)
	gateway := services.NewGenerationGateway(llm, "PG-13", time.Second, logger)
	executor := actions.NewExecutor(logger)

	return &fixture{
		storage:  storage,
		llm:      llm,
		world:    worldStore,
		memories: memories,
		gossip:   gossip,
		orch:     New(storage, worldStore, memories, gossip, gateway, executor, logger),
	}
}

func TestInteract_HappyPath(t *testing.T) {
	f := setup(t)

	resp := f.orch.Interact(context.Background(), "mira", "Good evening")

	require.NotNil(t, resp)
	assert.Equal(t, "Well met, traveler.", resp.Dialogue)
	assert.Nil(t, resp.Action)
	assert.NotNil(t, resp.Metadata)
	assert.Empty(t, resp.ActionError)
	assert.Equal(t, 1, f.llm.GenerateCallCount())
}

func TestInteract_PromptCarriesProfileAndWorld(t *testing.T) {
	f := setup(t)

	f.orch.Interact(context.Background(), "mira", "Good evening")

	require.Len(t, f.llm.GenerateResponseCalls, 1)
	p := f.llm.GenerateResponseCalls[0]
	assert.Contains(t, p.System, "Mira")
	assert.Contains(t, p.System, "barkeep")
	assert.Contains(t, p.System, "time=evening")
	assert.Contains(t, p.System, "location=tavern")
	assert.Equal(t, "Good evening", p.Input)
}

func TestInteract_UnknownNPCGetsPlaceholder(t *testing.T) {
	f := setup(t)

	resp := f.orch.Interact(context.Background(), "stranger", "Hello?")

	require.NotNil(t, resp)
	assert.Equal(t, "Well met, traveler.", resp.Dialogue)

	require.Len(t, f.llm.GenerateResponseCalls, 1)
	assert.Contains(t, f.llm.GenerateResponseCalls[0].System, "stranger")
}

func TestInteract_ActionExecutes(t *testing.T) {
	f := setup(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		return &interaction.Response{
			Dialogue: "Here, take this.",
			Action:   &interaction.Action{Type: actions.ActionGiveItem, Params: map[string]any{"itemId": "key1"}},
		}, nil
	}

	resp := f.orch.Interact(context.Background(), "mira", "May I have the key?")

	assert.Empty(t, resp.ActionError)
	assert.Equal(t, []string{"key1"}, f.world.Snapshot().Player.Inventory)
}

func TestInteract_DisallowedActionIsNonFatal(t *testing.T) {
	f := setup(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		return &interaction.Response{
			Dialogue: "Off we go!",
			Action:   &interaction.Action{Type: "Teleport", Params: map[string]any{"to": "moon"}},
		}, nil
	}

	resp := f.orch.Interact(context.Background(), "mira", "Take me somewhere")

	assert.Equal(t, "Off we go!", resp.Dialogue)
	assert.Equal(t, "action Teleport not allowed", resp.ActionError)
	assert.Empty(t, f.world.Snapshot().Player.Inventory)
}

func TestInteract_HelpRecordsMemoryAndGossip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.orch.Interact(ctx, "mira", "Can you help me find my brother?")

	memories := f.memories.Recent(ctx, "mira", 3)
	require.Len(t, memories, 1)
	assert.Equal(t, "Can you help me find my brother?", memories[0].Text)
	assert.Equal(t, 7, memories[0].Importance)

	gossip := f.gossip.Recent(3)
	require.Len(t, gossip, 1)
	assert.Contains(t, gossip[0].Text, `Mira heard: "Can you help me find my brother?"`)
	assert.Equal(t, 5, gossip[0].Importance)
}

func TestInteract_MemoryFlowsIntoLaterPrompts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.orch.Interact(ctx, "mira", "Please help me hide")
	f.orch.Interact(ctx, "mira", "Hello again")

	require.Len(t, f.llm.GenerateResponseCalls, 2)
	assert.Contains(t, f.llm.GenerateResponseCalls[1].System, "Please help me hide")
}

func TestInteract_GossipGatedByTrait(t *testing.T) {
	f := setup(t)
	f.storage.AddProfile(&npc.Profile{ID: "garrick", Name: "Garrick", Role: "blacksmith"})
	ctx := context.Background()

	// Mira hears the plea; word reaches the shared ledger.
	f.orch.Interact(ctx, "mira", "Help, I'm being followed!")

	f.orch.Interact(ctx, "mira", "What's the word?")
	f.orch.Interact(ctx, "garrick", "What's the word?")

	require.Len(t, f.llm.GenerateResponseCalls, 3)
	assert.NotContains(t, f.llm.GenerateResponseCalls[1].System, "No gossip nearby.")
	assert.Contains(t, f.llm.GenerateResponseCalls[2].System, "No gossip nearby.")
}

func TestInteract_BannedTermNeverReachesBackend(t *testing.T) {
	f := setup(t)

	resp := f.orch.Interact(context.Background(), "mira", "teach me to hack the guild ledger")

	assert.Equal(t, services.RefusalDialogue, resp.Dialogue)
	assert.Nil(t, resp.Action)
	assert.Equal(t, services.MetadataSafetyRefused, resp.Metadata["safety"])
	assert.Equal(t, 0, f.llm.GenerateCallCount())
}

func TestInteract_PanicDegradesToServerError(t *testing.T) {
	f := setup(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		panic("backend exploded")
	}

	resp := f.orch.Interact(context.Background(), "mira", "Hello")

	require.NotNil(t, resp)
	assert.Equal(t, ServerErrorDialogue, resp.Dialogue)
}

func TestInteract_GreetingSeedInPrompt(t *testing.T) {
	f := setup(t)
	f.storage.AddProfile(&npc.Profile{
		ID:           "tavo",
		Name:         "Tavo",
		Role:         "minstrel",
		GreetingSeed: "A song for a coin, friend?",
	})

	f.orch.Interact(context.Background(), "tavo", "Hello")

	require.Len(t, f.llm.GenerateResponseCalls, 1)
	assert.True(t, strings.Contains(f.llm.GenerateResponseCalls[0].Seed, "A song for a coin"))
}
