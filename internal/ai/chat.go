package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrGenerationProvider marks transport/auth failures of the chat API.
var ErrGenerationProvider = errors.New("generation provider failure")

// ChatProvider adapts the OpenAI-compatible client to the generation
// pipeline's Completer contract.
type ChatProvider struct {
	client *OpenAICompatibleClient
	cfg    ChatConfig
}

func NewChatProvider(client *OpenAICompatibleClient, cfg ChatConfig) *ChatProvider {
	return &ChatProvider{client: client, cfg: cfg}
}

func (p *ChatProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
	out, err := p.client.ChatCompletion(ctx, p.cfg, messages)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationProvider, err)
	}
	return out, nil
}
