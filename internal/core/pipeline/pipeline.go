package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/address"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/sorting"
)

// Normalizer prepares an image for OCR submission.
type Normalizer interface {
	Normalize(data []byte) ([]byte, error)
}

// TextExtractor runs the OCR provider chain.
type TextExtractor interface {
	ExtractText(ctx context.Context, imageData []byte, preferred string) (*ocr.Result, error)
}

// AddressParser turns OCR text into a structured address.
type AddressParser interface {
	Parse(ctx context.Context, ocrText string) (*address.StructuredAddress, error)
}

// RouteClassifier maps an address to a sorting decision.
type RouteClassifier interface {
	Classify(ctx context.Context, addr *address.StructuredAddress) (*sorting.Decision, error)
}

// Result is the aggregate outcome of one pipeline run. Owned by the caller
// and never mutated afterward.
type Result struct {
	Address   *address.StructuredAddress `json:"address"`
	Sorting   *sorting.Decision          `json:"sorting"`
	OCR       *ocr.Result                `json:"ocr"`
	ElapsedMs int64                      `json:"processingTimeMs"`
}

// Pipeline sequences normalization, OCR, address parsing, and sorting
// classification for one mail item.
type Pipeline struct {
	normalizer Normalizer
	extractor  TextExtractor
	parser     AddressParser
	classifier RouteClassifier
}

// New creates a new mail processing pipeline
func New(normalizer Normalizer, extractor TextExtractor, parser AddressParser, classifier RouteClassifier) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		extractor:  extractor,
		parser:     parser,
		classifier: classifier,
	}
}

// Process runs the full pipeline on an envelope image. Steps run strictly in
// order and any failure aborts the run; partial results are never returned.
// Elapsed time covers entry to the final classification.
func (p *Pipeline) Process(ctx context.Context, image []byte, ocrProvider string) (*Result, error) {
	startTime := time.Now()

	// Step 1: normalize image. The normalized bytes are what gets submitted
	// to OCR.
	normalized, err := p.normalizer.Normalize(image)
	if err != nil {
		return nil, err
	}

	// Step 2: extract text through the OCR provider chain
	ocrResult, err := p.extractor.ExtractText(ctx, normalized, ocrProvider)
	if err != nil {
		return nil, err
	}

	// Step 3: parse the address
	addr, err := p.parser.Parse(ctx, ocrResult.Text)
	if err != nil {
		return nil, err
	}

	// Step 4: classify sorting route
	decision, err := p.classifier.Classify(ctx, addr)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(startTime).Milliseconds()
	log.Info().
		Str("pincode", addr.Pincode).
		Str("route_code", decision.RouteCode).
		Int64("elapsed_ms", elapsed).
		Msg("mail item processed")

	return &Result{
		Address:   addr,
		Sorting:   decision,
		OCR:       ocrResult,
		ElapsedMs: elapsed,
	}, nil
}
