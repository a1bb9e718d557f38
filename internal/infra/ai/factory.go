package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bryanwahyu/code-doctor/internal/config"
	domai "github.com/bryanwahyu/code-doctor/internal/domain/ai"
	"github.com/bryanwahyu/code-doctor/internal/infra/ai/gemini"
	"github.com/bryanwahyu/code-doctor/internal/infra/ai/openai"
)

// New creates the model client selected by cfg.Provider.
func New(ctx context.Context, cfg config.AIConfig) (domai.Client, error) {
	var temperature float32
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	switch strings.ToLower(cfg.Provider) {
	case config.ProviderGemini, "":
		return gemini.NewClient(ctx, cfg.APIKey, gemini.Options{
			Model:       cfg.Model,
			Temperature: temperature,
			MaxTokens:   cfg.MaxOutputTokens,
			BaseURL:     cfg.BaseURL,
		})

	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		c := openai.NewClient(cfg.APIKey, cfg.Model, cfg.BaseURL)
		c.Temperature = temperature
		c.MaxTokens = cfg.MaxOutputTokens
		return c, nil

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s (supported: gemini, openai)", cfg.Provider)
	}
}
