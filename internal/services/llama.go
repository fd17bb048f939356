package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

// LlamaService implements LLMService against a self-hosted llama.cpp
// generation service. The service accepts the prompt fields verbatim and
// replies with the canonical dialogue/action/metadata JSON.
type LlamaService struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure LlamaService implements LLMService interface
var _ LLMService = (*LlamaService)(nil)

// NewLlamaService creates a new llama backend client for the given
// generate endpoint URL.
func NewLlamaService(url string, logger *slog.Logger) *LlamaService {
	return &LlamaService{
		url: url,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

func (l *LlamaService) InitModel(ctx context.Context, modelName string) error {
	// The llama service loads its model at its own startup.
	return nil
}

func (l *LlamaService) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	return true, nil
}

func (l *LlamaService) GenerateResponse(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
	reqBody, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("llama service returned status %d: %s", resp.StatusCode, string(body))
	}

	var out interaction.Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse llama response: %w", err)
	}

	out.Normalize()
	return &out, nil
}
