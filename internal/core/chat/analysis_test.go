package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postxindia/postx-backend/internal/core/llm"
)

type stubTextModel struct {
	response string
	err      error
}

func (s *stubTextModel) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return s.response, s.err
}

func TestComplaintAnalyzerAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("parses triage from model response", func(t *testing.T) {
		a := NewComplaintAnalyzer(&stubTextModel{response: `Here is my analysis:
{"sentiment":0.15,"category":"delivery_delay","priority":"high","autoResponse":"We apologize for the delay."}`})

		analysis := a.Analyze(ctx, "My parcel is a week late and nobody answers the phone!")
		require.NotNil(t, analysis)
		assert.InDelta(t, 0.15, analysis.Sentiment, 1e-9)
		assert.Equal(t, "delivery_delay", analysis.Category)
		assert.Equal(t, "high", analysis.Priority)
	})

	t.Run("model failure degrades to defaults", func(t *testing.T) {
		a := NewComplaintAnalyzer(&stubTextModel{err: errors.New("model down")})

		analysis := a.Analyze(ctx, "late parcel")
		require.NotNil(t, analysis)
		assert.InDelta(t, 0.5, analysis.Sentiment, 1e-9)
		assert.Equal(t, "other", analysis.Category)
		assert.Equal(t, "medium", analysis.Priority)
		assert.NotEmpty(t, analysis.AutoResponse)
	})

	t.Run("unparseable response degrades to defaults", func(t *testing.T) {
		a := NewComplaintAnalyzer(&stubTextModel{response: "I'm sorry to hear that."})

		analysis := a.Analyze(ctx, "late parcel")
		assert.Equal(t, "other", analysis.Category)
	})
}

type stubChatGenerator struct {
	response string
	err      error
}

func (s *stubChatGenerator) GenerateChat(ctx context.Context, systemPrompt string, history []llm.ChatMessage, userMessage string) (string, error) {
	return s.response, s.err
}

func TestAssistantReply(t *testing.T) {
	ctx := context.Background()

	t.Run("returns model response", func(t *testing.T) {
		a := NewAssistant(&stubChatGenerator{response: "Your parcel is in transit."})
		assert.Equal(t, "Your parcel is in transit.", a.Reply(ctx, "Where is my parcel?", nil))
	})

	t.Run("model failure degrades to canned reply", func(t *testing.T) {
		a := NewAssistant(&stubChatGenerator{err: errors.New("model down")})
		assert.Equal(t, fallbackReply, a.Reply(ctx, "Where is my parcel?", nil))
	})
}
