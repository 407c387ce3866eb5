package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// geminiConfidence is a nominal score assigned on success; the generateContent
// API does not report one for text extraction.
const geminiConfidence = 0.92

// GeminiProvider implements OCR using the Gemini vision API.
type GeminiProvider struct {
	apiKey string
	model  string
	client *http.Client
}

// NewGeminiProvider creates a new Gemini vision OCR provider
func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	if model == "" {
		model = "gemini-2.0-flash-exp"
	}

	return &GeminiProvider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// GetProviderName returns the provider name
func (p *GeminiProvider) GetProviderName() string {
	return "Gemini Vision AI"
}

// Gemini REST API request/response structures
type geminiVisionRequest struct {
	Contents []geminiVisionContent `json:"contents"`
}

type geminiVisionContent struct {
	Parts []geminiVisionPart `json:"parts"`
}

type geminiVisionPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64 encoded image
}

type geminiVisionResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractText extracts text from an envelope image using Gemini vision
func (p *GeminiProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		p.model, p.apiKey)

	reqBody := geminiVisionRequest{
		Contents: []geminiVisionContent{
			{
				Parts: []geminiVisionPart{
					{
						InlineData: &geminiInlineData{
							MimeType: http.DetectContentType(imageData),
							Data:     base64.StdEncoding.EncodeToString(imageData),
						},
					},
					{
						Text: "Extract all text from this image. Focus on addresses, names, and PIN codes. Return only the extracted text.",
					},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini vision error (model: %s, status: %d): %s", p.model, resp.StatusCode, string(body))
	}

	var geminiResp geminiVisionResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from Gemini vision")
	}

	return &Result{
		Text:       geminiResp.Candidates[0].Content.Parts[0].Text,
		Confidence: geminiConfidence,
		Provider:   p.GetProviderName(),
	}, nil
}
