package insights

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiCompleter is the Completer backed by the Gemini API.
type GeminiCompleter struct {
	client *genai.Client
}

// NewGeminiCompleter creates a Gemini client with the given API key. With an
// empty key no client is created and every Complete fails with ErrMissingAPIKey.
func NewGeminiCompleter(ctx context.Context, apiKey string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return &GeminiCompleter{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiCompleter: create genai client: %w", err)
	}
	return &GeminiCompleter{client: client}, nil
}

// Complete implements Completer.
func (g *GeminiCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if g.client == nil {
		return "", ErrMissingAPIKey
	}
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Prompt}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, req.Model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("GeminiCompleter.Complete: generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Ensure GeminiCompleter implements Completer.
var _ Completer = (*GeminiCompleter)(nil)
