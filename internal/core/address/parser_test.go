package address

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJSONGenerator struct {
	response string
	err      error
	called   bool
}

func (s *stubJSONGenerator) GenerateJSON(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	s.called = true
	return s.response, s.err
}

type stubTextGenerator struct {
	response string
	err      error
	called   bool
}

func (s *stubTextGenerator) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	s.called = true
	return s.response, s.err
}

const envelopeText = "To: Ravi Kumar, 12 MG Road, Bengaluru, Karnataka 560001"

func TestParserParse(t *testing.T) {
	ctx := context.Background()

	t.Run("primary model JSON is used directly", func(t *testing.T) {
		primary := &stubJSONGenerator{response: `{
			"recipientName":"Ravi Kumar","street":"12 MG Road","city":"Bengaluru",
			"state":"Karnataka","pincode":"560001","isHandwritten":false
		}`}
		fallback := &stubTextGenerator{}
		p := NewParser(primary, fallback)

		addr, err := p.Parse(ctx, envelopeText)
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", addr.RecipientName)
		assert.Equal(t, "560001", addr.Pincode)
		assert.Equal(t, "12 MG Road, Bengaluru, Karnataka - 560001", addr.FullAddress)
		assert.InDelta(t, 0.90, addr.Confidence, 1e-9)
		assert.False(t, fallback.called)
	})

	t.Run("numeric pincode is accepted", func(t *testing.T) {
		primary := &stubJSONGenerator{response: `{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":560001}`}
		p := NewParser(primary, &stubTextGenerator{})

		addr, err := p.Parse(ctx, envelopeText)
		require.NoError(t, err)
		assert.Equal(t, "560001", addr.Pincode)
	})

	t.Run("first six digit run in pincode field is used", func(t *testing.T) {
		primary := &stubJSONGenerator{response: `{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"PIN: 560001 (India)"}`}
		p := NewParser(primary, &stubTextGenerator{})

		addr, err := p.Parse(ctx, envelopeText)
		require.NoError(t, err)
		assert.Equal(t, "560001", addr.Pincode)
	})

	t.Run("markdown fences are stripped", func(t *testing.T) {
		primary := &stubJSONGenerator{response: "```json\n{\"street\":\"12 MG Road\",\"city\":\"Bengaluru\",\"state\":\"Karnataka\",\"pincode\":\"560001\"}\n```"}
		p := NewParser(primary, &stubTextGenerator{})

		addr, err := p.Parse(ctx, envelopeText)
		require.NoError(t, err)
		assert.Equal(t, "560001", addr.Pincode)
	})

	t.Run("primary failure falls back to prose mining", func(t *testing.T) {
		primary := &stubJSONGenerator{err: errors.New("model unavailable")}
		fallback := &stubTextGenerator{response: `Sure! Here's the parsed address:
{"recipientName":"Ravi Kumar","street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001","isHandwritten":true}
Hope that helps.`}
		p := NewParser(primary, fallback)

		addr, err := p.Parse(ctx, envelopeText)
		require.NoError(t, err)
		assert.True(t, fallback.called)
		assert.Equal(t, "Bengaluru", addr.City)
		assert.True(t, addr.IsHandwritten)
	})

	t.Run("malformed primary JSON falls back", func(t *testing.T) {
		primary := &stubJSONGenerator{response: "{this is not json"}
		fallback := &stubTextGenerator{response: `{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"560001"}`}
		p := NewParser(primary, fallback)

		addr, err := p.Parse(ctx, envelopeText)
		require.NoError(t, err)
		assert.True(t, fallback.called)
		assert.Equal(t, "560001", addr.Pincode)
	})

	t.Run("both models failing is ErrParse", func(t *testing.T) {
		primary := &stubJSONGenerator{err: errors.New("down")}
		fallback := &stubTextGenerator{err: errors.New("also down")}
		p := NewParser(primary, fallback)

		_, err := p.Parse(ctx, envelopeText)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("missing pincode is ErrParse", func(t *testing.T) {
		primary := &stubJSONGenerator{response: `{"street":"12 MG Road","city":"Bengaluru","state":"Karnataka","pincode":"56001"}`}
		p := NewParser(primary, &stubTextGenerator{})

		_, err := p.Parse(ctx, envelopeText)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("fallback without JSON is ErrParse", func(t *testing.T) {
		primary := &stubJSONGenerator{err: errors.New("down")}
		fallback := &stubTextGenerator{response: "I could not find an address in that text."}
		p := NewParser(primary, fallback)

		_, err := p.Parse(ctx, envelopeText)
		assert.ErrorIs(t, err, ErrParse)
	})
}
