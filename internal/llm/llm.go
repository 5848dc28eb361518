package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"blogforge/internal/apperr"
	"blogforge/internal/config"
)

// DefaultModel is the default Gemini model for both analysis and generation.
const DefaultModel = "gemini-2.0-flash-exp"

// ImagePart is one downloaded image payload handed to a multimodal call.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// Client wraps the Gemini SDK with the two call shapes the pipeline needs.
// Each call builds a fresh request; the client holds no session state.
type Client struct {
	modelName   string
	temperature float32
	gClient     *genai.Client
}

// NewClient creates a new Gemini client from explicit configuration.
// A missing API key fails fast before any network call.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperr.ErrMissingAPIKey
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		modelName:   modelName,
		temperature: cfg.Temperature,
		gClient:     gClient,
	}, nil
}

// ModelName returns the model identifier used by this client.
func (c *Client) ModelName() string {
	return c.modelName
}

// GenerateFromText runs a single text-only generation call.
func (c *Client) GenerateFromText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, c.generateConfig())
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// GenerateFromImages runs a single multimodal call with the prompt followed by
// every image payload.
func (c *Client) GenerateFromImages(ctx context.Context, prompt string, images []ImagePart) (string, error) {
	parts := make([]*genai.Part, 0, len(images)+1)
	parts = append(parts, &genai.Part{Text: prompt})
	for _, img := range images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MIMEType,
				Data:     img.Data,
			},
		})
	}

	contents := []*genai.Content{{Parts: parts, Role: "user"}}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, c.generateConfig())
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	if c.temperature <= 0 {
		return nil
	}
	temp := c.temperature
	return &genai.GenerateContentConfig{Temperature: &temp}
}
