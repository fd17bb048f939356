package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

const (
	DefaultOpenAITemperature = 0.7
	DefaultOpenAIMaxTokens   = 512
)

// OpenAIService implements LLMService using the OpenAI chat completions API.
type OpenAIService struct {
	client    oai.Client
	modelName string
	logger    *slog.Logger
}

// Ensure OpenAIService implements LLMService interface
var _ LLMService = (*OpenAIService)(nil)

// NewOpenAIService creates a new OpenAI service instance.
func NewOpenAIService(apiKey string, modelName string, logger *slog.Logger) *OpenAIService {
	client := oai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: 120 * time.Second}),
	)

	return &OpenAIService{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}
}

func (o *OpenAIService) InitModel(ctx context.Context, modelName string) error {
	return nil
}

func (o *OpenAIService) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	return true, nil
}

func (o *OpenAIService) GenerateResponse(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
	messages := []oai.ChatCompletionMessageParamUnion{
		oai.SystemMessage(p.System),
	}
	if p.Seed != "" {
		messages = append(messages, oai.AssistantMessage(p.Seed))
	}
	messages = append(messages, oai.UserMessage(p.Input))

	params := oai.ChatCompletionNewParams{
		Model:               shared.ChatModel(o.modelName),
		Messages:            messages,
		Temperature:         param.NewOpt(DefaultOpenAITemperature),
		MaxCompletionTokens: param.NewOpt(int64(DefaultOpenAIMaxTokens)),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned empty choices")
	}

	return parseModelReply(resp.Choices[0].Message.Content), nil
}
