package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// mistralConfidence is a nominal score assigned on success. Mistral does not
// report a per-call confidence; this constant reflects its position as the
// handwriting-specialized provider, not a measured value.
const mistralConfidence = 0.94

// MistralProvider implements OCR using Mistral's Pixtral vision model via the
// OpenAI-compatible chat completions API.
type MistralProvider struct {
	client *openai.Client
	model  string
}

// NewMistralProvider creates a new Mistral vision OCR provider
func NewMistralProvider(apiKey, baseURL, model string) *MistralProvider {
	if model == "" {
		model = "pixtral-12b-2409"
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL

	return &MistralProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// GetProviderName returns the provider name
func (p *MistralProvider) GetProviderName() string {
	return "Mistral AI Vision"
}

// ExtractText extracts text from an envelope image using Pixtral
func (p *MistralProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	mimeType := http.DetectContentType(imageData)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Extract all text from this mail envelope image. Focus on recipient name, address, city, state, and PIN code. Return only the extracted text, maintaining the structure as it appears.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mistral vision request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from Mistral vision")
	}

	return &Result{
		Text:       resp.Choices[0].Message.Content,
		Confidence: mistralConfidence,
		Provider:   p.GetProviderName(),
	}, nil
}
