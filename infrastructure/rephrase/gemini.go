package rephrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider rewords text via the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed provider. The model name defaults to a
// fast flash model when empty.
func NewGemini(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrProviderNotConfigured
	}
	if model == "" {
		model = "gemini-2.0-flash-001"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns the provider identifier.
func (g *GeminiProvider) Name() string { return "gemini" }

// Complete generates one reworded message.
func (g *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	model := g.client.GenerativeModel(g.model)
	if req.SystemPrompt != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemPrompt)},
		}
	}
	if req.Temperature > 0 {
		model.SetTemperature(float32(req.Temperature))
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}

// Available reports whether the client is configured.
func (g *GeminiProvider) Available(context.Context) bool {
	return g.client != nil
}

// Close releases the underlying client.
func (g *GeminiProvider) Close() error {
	return g.client.Close()
}

var _ Provider = (*GeminiProvider)(nil)
