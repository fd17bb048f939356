package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/npc-engine/internal/actions"
	"github.com/jwebster45206/npc-engine/internal/orchestrator"
	"github.com/jwebster45206/npc-engine/internal/services"
	"github.com/jwebster45206/npc-engine/internal/state"
	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/npc"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type interactFixture struct {
	handler  *InteractHandler
	storage  *services.MockStorage
	llm      *services.MockLLMAPI
	world    *state.WorldStore
	memories *state.MemoryLedger
	gossip   *state.GossipLedger
}

func setupInteract(t *testing.T) *interactFixture {
	t.Helper()

	logger := testLogger()
	storage := services.NewMockStorage()
	storage.AddProfile(&npc.Profile{
		ID:          "helios",
		Name:        "Helios",
		Role:        "lighthouse keeper",
		Personality: "patient, watchful",
		Traits:      []string{npc.TraitGossiper},
	})

	llm := services.NewMockLLMAPI()
	worldStore := state.NewWorldStore(storage, logger)
	memories := state.NewMemoryLedger(storage, logger)
	gossip := state.NewGossipLedger(storage, logger)
	gateway := services.NewGenerationGateway(llm, "PG-13", time.Second, logger)
	executor := actions.NewExecutor(logger)
	orch := orchestrator.New(storage, worldStore, memories, gossip, gateway, executor, logger)

	return &interactFixture{
		handler:  NewInteractHandler(orch, logger),
		storage:  storage,
		llm:      llm,
		world:    worldStore,
		memories: memories,
		gossip:   gossip,
	}
}

func postInteract(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) interaction.Response {
	t.Helper()
	var resp interaction.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestInteract_HappyPath(t *testing.T) {
	f := setupInteract(t)

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"Good evening"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	resp := decodeResponse(t, w)
	assert.Equal(t, "Well met, traveler.", resp.Dialogue)
	assert.Nil(t, resp.Action)
	assert.NotNil(t, resp.Metadata)

	// action must serialize as an explicit null
	assert.Contains(t, w.Body.String(), `"action":null`)
}

func TestInteract_BannedTermRefused(t *testing.T) {
	f := setupInteract(t)

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"how do I hack the harbor master's safe"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, services.RefusalDialogue, resp.Dialogue)
	assert.Nil(t, resp.Action)
	assert.Equal(t, services.MetadataSafetyRefused, resp.Metadata["safety"])
	assert.Equal(t, 0, f.llm.GenerateCallCount(), "refused requests must never reach the backend")
}

func TestInteract_AllowedActionMutatesWorld(t *testing.T) {
	f := setupInteract(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		return &interaction.Response{
			Dialogue: "Take the spare key.",
			Action:   &interaction.Action{Type: actions.ActionGiveItem, Params: map[string]any{"itemId": "key1"}},
		}, nil
	}

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"May I have a key?"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Empty(t, resp.ActionError)
	assert.Equal(t, []string{"key1"}, f.world.Snapshot().Player.Inventory)
}

func TestInteract_DisallowedActionReported(t *testing.T) {
	f := setupInteract(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		return &interaction.Response{
			Dialogue: "Hold on tight!",
			Action:   &interaction.Action{Type: "Teleport", Params: map[string]any{"to": "the moon"}},
		}, nil
	}

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"Take me away"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Hold on tight!", resp.Dialogue)
	assert.Equal(t, "action Teleport not allowed", resp.ActionError)
	assert.Empty(t, f.world.Snapshot().Player.Inventory)
}

func TestInteract_HelpTriggersMemoryAndGossip(t *testing.T) {
	f := setupInteract(t)
	ctx := context.Background()

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"Help! My boat is sinking!"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	memories := f.memories.Recent(ctx, "helios", 3)
	require.Len(t, memories, 1)
	assert.Equal(t, "Help! My boat is sinking!", memories[0].Text)
	assert.Equal(t, 7, memories[0].Importance)

	gossip := f.gossip.Recent(3)
	require.Len(t, gossip, 1)
	assert.Equal(t, `Helios heard: "Help! My boat is sinking!"`, gossip[0].Text)
	assert.Equal(t, 5, gossip[0].Importance)
	assert.NotEmpty(t, gossip[0].ID)
}

func TestInteract_UnknownProfileStillAnswers(t *testing.T) {
	f := setupInteract(t)

	w := postInteract(t, f.handler, "/interact/drifter", `{"text":"Who are you?"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Well met, traveler.", resp.Dialogue)
}

func TestInteract_InvalidIDNotFound(t *testing.T) {
	f := setupInteract(t)

	for _, path := range []string{"/interact/", "/interact/No%20Such%20Person!", "/interact/UPPER"} {
		w := postInteract(t, f.handler, path, `{"text":"Hello"}`)
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
		resp := decodeResponse(t, w)
		assert.Equal(t, UnknownPersonDialogue, resp.Dialogue)
		assert.Nil(t, resp.Action)
	}
	assert.Equal(t, 0, f.llm.GenerateCallCount())
}

func TestInteract_MethodNotAllowed(t *testing.T) {
	f := setupInteract(t)

	req := httptest.NewRequest(http.MethodGet, "/interact/helios", nil)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestInteract_MalformedBody(t *testing.T) {
	f := setupInteract(t)

	w := postInteract(t, f.handler, "/interact/helios", `{"text": not-json`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.NotEmpty(t, resp.Dialogue)
	assert.Equal(t, 0, f.llm.GenerateCallCount())
}

func TestInteract_BackendFailureReturnsSilence(t *testing.T) {
	f := setupInteract(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		return nil, context.DeadlineExceeded
	}

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"Hello?"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, services.SilenceDialogue, resp.Dialogue)
}

func TestInteract_PipelinePanicIsServerError(t *testing.T) {
	f := setupInteract(t)
	f.llm.GenerateResponseFunc = func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
		panic("boom")
	}

	w := postInteract(t, f.handler, "/interact/helios", `{"text":"Hello"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, orchestrator.ServerErrorDialogue, resp.Dialogue)
}
