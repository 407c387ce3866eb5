package ocr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name    string
	result  *Result
	err     error
	calls   *[]string
	gotData []byte
}

func (s *stubProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	*s.calls = append(*s.calls, s.name)
	s.gotData = imageData
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubProvider) GetProviderName() string { return s.name }

func newStubChain(calls *[]string, mistralErr, geminiErr, ocrspaceErr error) (*Chain, *stubProvider, *stubProvider, *stubProvider) {
	mistral := &stubProvider{name: SelectorMistral, err: mistralErr, calls: calls,
		result: &Result{Text: "mistral text", Confidence: 0.94, Provider: SelectorMistral}}
	gemini := &stubProvider{name: SelectorGemini, err: geminiErr, calls: calls,
		result: &Result{Text: "gemini text", Confidence: 0.92, Provider: SelectorGemini}}
	ocrspace := &stubProvider{name: SelectorOCRSpace, err: ocrspaceErr, calls: calls,
		result: &Result{Text: "ocrspace text", Confidence: 0.88, Provider: SelectorOCRSpace}}
	return NewChain(mistral, gemini, ocrspace), mistral, gemini, ocrspace
}

func TestChainExtractText(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("provider down")

	t.Run("first success wins", func(t *testing.T) {
		var calls []string
		chain, _, _, _ := newStubChain(&calls, nil, nil, nil)

		result, err := chain.ExtractText(ctx, []byte("img"), SelectorMistral)
		require.NoError(t, err)
		assert.Equal(t, "mistral text", result.Text)
		assert.Equal(t, []string{SelectorMistral}, calls)
	})

	t.Run("failure falls through to next provider", func(t *testing.T) {
		var calls []string
		chain, _, _, _ := newStubChain(&calls, boom, nil, nil)

		result, err := chain.ExtractText(ctx, []byte("img"), SelectorMistral)
		require.NoError(t, err)
		assert.Equal(t, SelectorGemini, result.Provider)
		assert.Equal(t, []string{SelectorMistral, SelectorGemini}, calls)
	})

	t.Run("all providers failing returns ErrExhausted", func(t *testing.T) {
		var calls []string
		chain, _, _, _ := newStubChain(&calls, boom, boom, boom)

		_, err := chain.ExtractText(ctx, []byte("img"), SelectorMistral)
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, []string{SelectorMistral, SelectorGemini, SelectorOCRSpace}, calls)
	})

	t.Run("gemini preference skips mistral", func(t *testing.T) {
		var calls []string
		chain, _, _, _ := newStubChain(&calls, nil, boom, boom)

		_, err := chain.ExtractText(ctx, []byte("img"), SelectorGemini)
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, []string{SelectorGemini, SelectorOCRSpace}, calls)
	})

	t.Run("ocrspace preference has no fallback", func(t *testing.T) {
		var calls []string
		chain, _, _, _ := newStubChain(&calls, nil, nil, boom)

		_, err := chain.ExtractText(ctx, []byte("img"), SelectorOCRSpace)
		assert.ErrorIs(t, err, ErrExhausted)
		assert.Equal(t, []string{SelectorOCRSpace}, calls)
	})

	t.Run("unknown selector uses the full chain", func(t *testing.T) {
		var calls []string
		chain, _, _, _ := newStubChain(&calls, nil, nil, nil)

		result, err := chain.ExtractText(ctx, []byte("img"), "something-else")
		require.NoError(t, err)
		assert.Equal(t, SelectorMistral, result.Provider)
		assert.Equal(t, []string{SelectorMistral}, calls)
	})

	t.Run("image bytes reach the provider untouched", func(t *testing.T) {
		var calls []string
		chain, mistral, _, _ := newStubChain(&calls, nil, nil, nil)

		_, err := chain.ExtractText(ctx, []byte{0xFF, 0xD8, 0x01}, SelectorMistral)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFF, 0xD8, 0x01}, mistral.gotData)
	})
}
