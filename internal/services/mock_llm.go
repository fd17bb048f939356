package services

import (
	"context"
	"sync"

	"github.com/jwebster45206/npc-engine/pkg/interaction"
	"github.com/jwebster45206/npc-engine/pkg/prompt"
)

// MockLLMAPI is a mock implementation of LLMService for testing.
type MockLLMAPI struct {
	InitModelFunc        func(ctx context.Context, modelName string) error
	GenerateResponseFunc func(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error)
	IsModelReadyFunc     func(ctx context.Context, modelName string) (bool, error)

	// Track calls for testing
	InitModelCalls        []string
	GenerateResponseCalls []prompt.Prompt
	IsModelReadyCalls     []string

	mu sync.Mutex // protects all fields above
}

// Ensure MockLLMAPI implements LLMService interface
var _ LLMService = (*MockLLMAPI)(nil)

// NewMockLLMAPI creates a new mock LLM service.
func NewMockLLMAPI() *MockLLMAPI {
	return &MockLLMAPI{
		InitModelCalls:        make([]string, 0),
		GenerateResponseCalls: make([]prompt.Prompt, 0),
		IsModelReadyCalls:     make([]string, 0),
	}
}

func (m *MockLLMAPI) InitModel(ctx context.Context, modelName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InitModelCalls = append(m.InitModelCalls, modelName)

	if m.InitModelFunc != nil {
		return m.InitModelFunc(ctx, modelName)
	}
	return nil
}

func (m *MockLLMAPI) GenerateResponse(ctx context.Context, p *prompt.Prompt) (*interaction.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GenerateResponseCalls = append(m.GenerateResponseCalls, *p)

	if m.GenerateResponseFunc != nil {
		return m.GenerateResponseFunc(ctx, p)
	}

	// Default behavior: a bland in-character reply with no action.
	return &interaction.Response{
		Dialogue: "Well met, traveler.",
		Metadata: map[string]any{},
	}, nil
}

func (m *MockLLMAPI) IsModelReady(ctx context.Context, modelName string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.IsModelReadyCalls = append(m.IsModelReadyCalls, modelName)

	if m.IsModelReadyFunc != nil {
		return m.IsModelReadyFunc(ctx, modelName)
	}
	return true, nil
}

// GenerateCallCount returns how many times GenerateResponse was invoked.
func (m *MockLLMAPI) GenerateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GenerateResponseCalls)
}
