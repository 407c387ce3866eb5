package chat

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/postxindia/postx-backend/internal/core/llm"
)

const assistantContext = `You are PostX India AI Assistant, a helpful chatbot for India Post services.
You help users with:
- Tracking parcels and packages
- Understanding postal services
- Filing complaints
- Finding PIN codes and post offices
- Explaining delivery times and costs
- Answering questions about India Post services

Be friendly, professional, and concise.`

const fallbackReply = "I apologize, but I'm having trouble responding right now. Please try again."

// ChatGenerator is a model endpoint supporting multi-turn conversations.
type ChatGenerator interface {
	GenerateChat(ctx context.Context, systemPrompt string, history []llm.ChatMessage, userMessage string) (string, error)
}

// Assistant is the PostX customer-facing chatbot.
type Assistant struct {
	model ChatGenerator
}

// NewAssistant creates a new chat assistant
func NewAssistant(model ChatGenerator) *Assistant {
	return &Assistant{model: model}
}

// Reply answers a user message given the conversation so far. Model failures
// degrade to a canned apology; the chat widget never surfaces an error.
func (a *Assistant) Reply(ctx context.Context, message string, history []llm.ChatMessage) string {
	response, err := a.model.GenerateChat(ctx, assistantContext, history, message)
	if err != nil {
		log.Warn().Err(err).Msg("assistant chat failed")
		return fallbackReply
	}
	return response
}
