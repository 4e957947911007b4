package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Gemini generates text with Google's Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	if model == "" {
		return nil, errors.New("gemini model is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate (%s): %w", g.model, err)
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

// FromConfig returns a Gemini generator when apiKey is set and the client can
// be built. Otherwise it returns nil and the service runs in offline mode.
func FromConfig(ctx context.Context, apiKey, model string, logger *zap.Logger) Generator {
	if apiKey == "" {
		logger.Info("text generation disabled, no API key configured")
		return nil
	}
	g, err := NewGemini(ctx, apiKey, model)
	if err != nil {
		logger.Warn("text generation disabled", zap.Error(err))
		return nil
	}
	logger.Info("text generation enabled", zap.String("model", model))
	return g
}
