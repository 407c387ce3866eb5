package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// MistralProvider talks to Mistral's chat completions endpoint, which is
// OpenAI-compatible.
type MistralProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewMistralProvider creates a new Mistral text provider
func NewMistralProvider(apiKey, baseURL, model string) *MistralProvider {
	if model == "" {
		model = "mistral-large-latest"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &MistralProvider{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: 512,
	}
}

// GetProviderName returns the provider name
func (p *MistralProvider) GetProviderName() string {
	return "Mistral AI"
}

// GenerateResponse generates a free-text completion
func (p *MistralProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return p.generate(ctx, systemPrompt, userMessage, nil)
}

// GenerateJSON generates a completion in strict JSON-only response mode.
func (p *MistralProvider) GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return p.generate(ctx, systemPrompt, userMessage, &openai.ChatCompletionResponseFormat{
		Type: openai.ChatCompletionResponseFormatTypeJSONObject,
	})
}

func (p *MistralProvider) generate(ctx context.Context, systemPrompt, userMessage string, format *openai.ChatCompletionResponseFormat) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:          p.model,
		Messages:       messages,
		MaxTokens:      p.maxTokens,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("mistral request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Mistral")
	}

	return resp.Choices[0].Message.Content, nil
}
