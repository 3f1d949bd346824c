package service

import (
	"context"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

// FallbackReply is returned in place of a reply whenever generation fails.
const FallbackReply = "⚠️ System busy or error. Please try again."

// Conversation sends prompts to the generation provider. It never fails:
// provider errors come back as FallbackReply.
type Conversation struct {
	generator model.Generator
	logger    *logger.Logger
}

func NewConversation(generator model.Generator, logger *logger.Logger) *Conversation {
	return &Conversation{
		generator: generator,
		logger:    logger,
	}
}

func (c *Conversation) Converse(ctx context.Context, prompt, contextText string, prior []model.ChatMessage) string {
	reply, err := c.generator.Generate(ctx, prior, BuildPrompt(prompt, contextText))
	if err != nil {
		c.logger.Warn("Conversation service: generation failed",
			"turns", len(prior),
			"error", err.Error())
		return FallbackReply
	}
	return reply
}

// BuildPrompt prefixes prompt with the document context when there is one.
func BuildPrompt(prompt, contextText string) string {
	if contextText == "" {
		return prompt
	}
	return "Context: " + contextText + "\n\nQuestion: " + prompt
}
