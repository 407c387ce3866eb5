package ocr

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ErrExhausted is returned when every attempted provider in the chain failed.
var ErrExhausted = errors.New("all OCR providers failed")

// Chain tries OCR providers in a priority order derived from the caller's
// preferred provider:
//
//	mistral  → gemini → ocrspace
//	gemini   → ocrspace
//	ocrspace → (no fallback)
//
// The first success wins. A provider error triggers the next attempt; it is
// never retried. Identical images re-invoke providers on every call; there
// is no caching layer.
type Chain struct {
	providers map[string]Provider
}

// NewChain creates an OCR chain over the given providers, keyed by selector.
func NewChain(mistral, gemini, ocrspace Provider) *Chain {
	return &Chain{
		providers: map[string]Provider{
			SelectorMistral:  mistral,
			SelectorGemini:   gemini,
			SelectorOCRSpace: ocrspace,
		},
	}
}

// attemptOrder returns the providers to try for a preferred selector.
// Unknown selectors get the full chain, matching the default.
func attemptOrder(preferred string) []string {
	switch preferred {
	case SelectorGemini:
		return []string{SelectorGemini, SelectorOCRSpace}
	case SelectorOCRSpace:
		return []string{SelectorOCRSpace}
	default:
		return []string{SelectorMistral, SelectorGemini, SelectorOCRSpace}
	}
}

// ExtractText runs the chain and returns the first successful result. When
// every attempted provider fails it returns an error wrapping ErrExhausted.
func (c *Chain) ExtractText(ctx context.Context, imageData []byte, preferred string) (*Result, error) {
	var lastErr error

	for _, selector := range attemptOrder(preferred) {
		provider := c.providers[selector]
		result, err := provider.ExtractText(ctx, imageData)
		if err != nil {
			log.Warn().
				Err(err).
				Str("provider", provider.GetProviderName()).
				Msg("OCR provider failed, trying next in chain")
			lastErr = err
			continue
		}

		log.Info().
			Str("provider", result.Provider).
			Float64("confidence", result.Confidence).
			Msg("OCR extraction succeeded")
		return result, nil
	}

	return nil, fmt.Errorf("%w: last error: %v", ErrExhausted, lastErr)
}
