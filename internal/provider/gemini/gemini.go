// Package gemini adapts the Google GenAI SDK to model.Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.Generator = (*Provider)(nil)

// contentGenerator is the part of *genai.Models the provider uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Provider struct {
	models  contentGenerator
	model   string
	timeout time.Duration
}

// NewProvider creates a GenAI client for the Gemini API.
func NewProvider(ctx context.Context, apiKey, modelName string, timeout time.Duration) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newProvider(client.Models, modelName, timeout), nil
}

func newProvider(models contentGenerator, modelName string, timeout time.Duration) *Provider {
	return &Provider{
		models:  models,
		model:   modelName,
		timeout: timeout,
	}
}

// Generate replays history as user/model turns followed by prompt and
// returns the reply text.
func (p *Provider) Generate(ctx context.Context, history []model.ChatMessage, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, genai.NewContentFromText(msg.Content, roleFor(msg.Role)))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	resp, err := p.models.GenerateContent(ctx, p.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrGenerationUnavailable, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", model.ErrGenerationUnavailable)
	}
	return resp.Text(), nil
}

func roleFor(role model.Role) genai.Role {
	if role == model.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}
