package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

// LLMService is the contract with a generation backend. Implementations
// return transport and decoding failures as errors; absorbing those into a
// safe fallback response is the gateway's job, not the provider's.
type LLMService interface {
	// InitModel initializes the model on startup
	InitModel(ctx context.Context, modelName string) error

	// GenerateResponse generates an interaction response for the prompt
	GenerateResponse(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error)

	// IsModelReady checks if the specified model is ready for use
	IsModelReady(ctx context.Context, modelName string) (bool, error)
}

// parseModelReply interprets raw model output as a canonical response.
// Models are instructed to emit JSON with dialogue/action/metadata keys, but
// chat models wrap output in markdown fences or drift into prose; anything
// that fails to parse becomes plain dialogue.
func parseModelReply(text string) *interaction.Response {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var resp interaction.Response
	if strings.HasPrefix(trimmed, "{") && json.Unmarshal([]byte(trimmed), &resp) == nil {
		resp.Normalize()
		return &resp
	}

	resp = interaction.Response{Dialogue: trimmed}
	resp.Normalize()
	return &resp
}
