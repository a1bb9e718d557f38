package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bryanwahyu/code-doctor/internal/domain/ai"
)

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 2048
)

type Client struct {
	client      *genai.Client
	Model       string
	Temperature float32
	MaxTokens   int
}

// Options tunes generation; BaseURL is only set in tests or behind a proxy.
type Options struct {
	Model       string
	Temperature float32
	MaxTokens   int
	BaseURL     string
}

func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions.BaseURL = opts.BaseURL
	}
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		client:      cli,
		Model:       model,
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
	}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx,
		c.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(c.Temperature),
			MaxOutputTokens: int32(c.MaxTokens),
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate content: %w", ai.ErrUpstreamUnavailable, err)
	}

	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}

// firstText returns the first text part of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	for _, part := range content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			return part.Text
		}
	}
	return ""
}
