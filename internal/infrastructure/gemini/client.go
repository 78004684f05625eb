// Package gemini adapts the Google GenAI client to the enrichment generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

var (
	ErrNoAPIKey      = errors.New("gemini api key is required")
	ErrEmptyPrompt   = errors.New("prompt must not be empty")
	ErrEmptyResponse = errors.New("gemini api returned empty response")
)

// Generator sends single prompts to Gemini and asks for JSON output.
type Generator struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGenerator creates a Generator for the Gemini API backend. httpClient may
// be nil; the enrichment command passes one with a logging transport.
func NewGenerator(ctx context.Context, apiKey, model string, httpClient *http.Client) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &Generator{client: client, modelName: model, temperature: 0.2}, nil
}

// GenerateContent returns the text of the first candidate.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	temperature := g.temperature

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("models.GenerateContent: %w", err)
	}

	output := strings.TrimSpace(resp.Text())
	if output == "" {
		return "", ErrEmptyResponse
	}

	return output, nil
}

func (g *Generator) Model() string {
	return g.modelName
}
