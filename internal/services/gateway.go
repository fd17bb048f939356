package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
	"github.com/jwebster45206/npc-engine/pkg/textfilter"
)

const (
	// RefusalDialogue is returned when the safety pre-filter trips.
	RefusalDialogue = "I'm sorry, but I can't help you with that."

	// SilenceDialogue is returned when the backend is unreachable or
	// replies with garbage. The failure stays in metadata; the player
	// just sees a quiet NPC.
	SilenceDialogue = "The NPC falls silent."

	// MetadataSafetyRefused tags a refusal produced by the local
	// pre-filter rather than the model.
	MetadataSafetyRefused = "refused"
)

// GenerationGateway wraps an LLMService with the interaction pipeline's
// failure policy: a local banned-term pre-filter, a call deadline, and
// normalization of whatever comes back. Generate never returns an error;
// every outcome is a well-formed response.
type GenerationGateway struct {
	llm       LLMService
	safety    *textfilter.SafetyFilter
	profanity *textfilter.ProfanityFilter
	rating    string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewGenerationGateway creates a gateway around the given backend.
// Dialogue is profanity-filtered when the content rating calls for it.
func NewGenerationGateway(llm LLMService, rating string, timeout time.Duration, logger *slog.Logger) *GenerationGateway {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GenerationGateway{
		llm:       llm,
		safety:    textfilter.NewSafetyFilter(),
		profanity: textfilter.NewProfanityFilter(),
		rating:    rating,
		timeout:   timeout,
		logger:    logger,
	}
}

// Generate produces a canonical response for the prompt. The pre-filter
// scans the player-controlled portions of the payload (input and greeting
// seed); assembled context is NPC-authored and echoing a banned term there
// must not poison every later request.
func (g *GenerationGateway) Generate(ctx context.Context, p *prompt.Prompt) *interaction.Response {
	if term, found := g.safety.MatchBannedTerm(p.Input + "\n" + p.Seed); found {
		g.logger.Info("Refusing prompt before generation", "term", term)
		return &interaction.Response{
			Dialogue: RefusalDialogue,
			Metadata: map[string]any{"safety": MetadataSafetyRefused},
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.llm.GenerateResponse(callCtx, p)
	if err != nil {
		g.logger.Error("Generation backend failure", "error", err)
		return &interaction.Response{
			Dialogue: SilenceDialogue,
			Metadata: map[string]any{"error": err.Error()},
		}
	}
	if resp == nil {
		resp = &interaction.Response{}
	}

	resp.Normalize()

	if textfilter.ShouldFilterContent(g.rating) {
		resp.Dialogue = g.profanity.FilterDialogue(resp.Dialogue)
	}

	return resp
}
