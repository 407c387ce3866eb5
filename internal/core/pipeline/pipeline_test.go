package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postxindia/postx-backend/internal/core/address"
	"github.com/postxindia/postx-backend/internal/core/ocr"
	"github.com/postxindia/postx-backend/internal/core/sorting"
)

type stubNormalizer struct {
	out []byte
	err error
}

func (s *stubNormalizer) Normalize(data []byte) ([]byte, error) { return s.out, s.err }

type stubExtractor struct {
	result   *ocr.Result
	err      error
	gotImage []byte
	gotPref  string
}

func (s *stubExtractor) ExtractText(ctx context.Context, imageData []byte, preferred string) (*ocr.Result, error) {
	s.gotImage = imageData
	s.gotPref = preferred
	return s.result, s.err
}

type stubParser struct {
	addr    *address.StructuredAddress
	err     error
	gotText string
}

func (s *stubParser) Parse(ctx context.Context, ocrText string) (*address.StructuredAddress, error) {
	s.gotText = ocrText
	return s.addr, s.err
}

type stubClassifier struct {
	decision *sorting.Decision
	err      error
	gotAddr  *address.StructuredAddress
}

func (s *stubClassifier) Classify(ctx context.Context, addr *address.StructuredAddress) (*sorting.Decision, error) {
	s.gotAddr = addr
	return s.decision, s.err
}

func happyStubs() (*stubNormalizer, *stubExtractor, *stubParser, *stubClassifier) {
	normalizer := &stubNormalizer{out: []byte("normalized-jpeg")}
	extractor := &stubExtractor{result: &ocr.Result{Text: "Ravi Kumar, 12 MG Road, Bengaluru, Karnataka 560001", Confidence: 0.94, Provider: ocr.SelectorMistral}}
	parser := &stubParser{addr: &address.StructuredAddress{
		RecipientName: "Ravi Kumar",
		Street:        "12 MG Road",
		City:          "Bengaluru",
		State:         "Karnataka",
		Pincode:       "560001",
		Confidence:    0.90,
		FullAddress:   "12 MG Road, Bengaluru, Karnataka - 560001",
	}}
	classifier := &stubClassifier{decision: &sorting.Decision{
		SortingCenter:         "Bengaluru Regional Sorting Hub",
		RouteCode:             "KA-BLR-001",
		Priority:              "express",
		EstimatedDeliveryDays: 2,
		Zone:                  "Metro",
	}}
	return normalizer, extractor, parser, classifier
}

func TestPipelineProcess(t *testing.T) {
	ctx := context.Background()

	t.Run("runs all stages in order and assembles the result", func(t *testing.T) {
		normalizer, extractor, parser, classifier := happyStubs()
		p := New(normalizer, extractor, parser, classifier)

		result, err := p.Process(ctx, []byte("raw-upload"), ocr.SelectorMistral)
		require.NoError(t, err)

		// normalized bytes, not the raw upload, go to OCR
		assert.Equal(t, []byte("normalized-jpeg"), extractor.gotImage)
		assert.Equal(t, ocr.SelectorMistral, extractor.gotPref)
		assert.Equal(t, extractor.result.Text, parser.gotText)
		assert.Same(t, parser.addr, classifier.gotAddr)

		assert.Equal(t, "560001", result.Address.Pincode)
		assert.Equal(t, "KA-BLR-001", result.Sorting.RouteCode)
		assert.Equal(t, ocr.SelectorMistral, result.OCR.Provider)
		assert.GreaterOrEqual(t, result.ElapsedMs, int64(0))
	})

	t.Run("normalize failure aborts before OCR", func(t *testing.T) {
		normalizer, extractor, parser, classifier := happyStubs()
		normalizer.err = errors.New("bad image")
		normalizer.out = nil
		p := New(normalizer, extractor, parser, classifier)

		_, err := p.Process(ctx, []byte("raw"), ocr.SelectorMistral)
		require.Error(t, err)
		assert.Nil(t, extractor.gotImage)
	})

	t.Run("OCR failure aborts before parsing", func(t *testing.T) {
		normalizer, extractor, parser, classifier := happyStubs()
		extractor.result = nil
		extractor.err = ocr.ErrExhausted
		p := New(normalizer, extractor, parser, classifier)

		_, err := p.Process(ctx, []byte("raw"), ocr.SelectorMistral)
		assert.ErrorIs(t, err, ocr.ErrExhausted)
		assert.Empty(t, parser.gotText)
	})

	t.Run("parse failure aborts before classification", func(t *testing.T) {
		normalizer, extractor, parser, classifier := happyStubs()
		parser.addr = nil
		parser.err = address.ErrParse
		p := New(normalizer, extractor, parser, classifier)

		_, err := p.Process(ctx, []byte("raw"), ocr.SelectorMistral)
		assert.ErrorIs(t, err, address.ErrParse)
		assert.Nil(t, classifier.gotAddr)
	})

	t.Run("classification failure yields no partial result", func(t *testing.T) {
		normalizer, extractor, parser, classifier := happyStubs()
		classifier.decision = nil
		classifier.err = sorting.ErrClassification
		p := New(normalizer, extractor, parser, classifier)

		result, err := p.Process(ctx, []byte("raw"), ocr.SelectorMistral)
		assert.ErrorIs(t, err, sorting.ErrClassification)
		assert.Nil(t, result)
	})
}
