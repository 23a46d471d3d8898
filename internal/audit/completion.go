package audit

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// CompletionClient is the one external call the pipeline makes: a prompt in,
// a single text completion out. No retries or streaming; those concerns
// belong to the implementation, not to callers.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient implements CompletionClient against the Gemini API.
type GeminiClient struct {
	model string
}

// NewGeminiClient creates a client bound to the given model identifier.
// Credentials are picked up from the environment by the genai SDK.
func NewGeminiClient(model string) *GeminiClient {
	return &GeminiClient{model: model}
}

// Complete sends the prompt and returns the model's text completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from model %s", c.model)
	}
	return text, nil
}
