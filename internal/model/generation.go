package model

import "context"

// Generator sends a prompt with prior turns to a hosted model.
type Generator interface {
	Generate(ctx context.Context, history []ChatMessage, prompt string) (string, error)
}
