package ocr

import "context"

// Provider interface for OCR services
type Provider interface {
	// ExtractText extracts text from image
	ExtractText(ctx context.Context, imageData []byte) (*Result, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// Result contains the extracted text and metadata
type Result struct {
	Text       string  `json:"text"`       // Raw extracted text
	Confidence float64 `json:"confidence"` // OCR confidence score (0-1)
	Provider   string  `json:"source"`     // Provider that produced the text
}

// Provider selector values accepted from callers.
const (
	SelectorMistral  = "mistral"
	SelectorGemini   = "gemini"
	SelectorOCRSpace = "ocrspace"
)
