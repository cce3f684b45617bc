package ai

import (
	"fmt"

	"github.com/aibrandtrack/brandtrack/internal/ai/anthropic"
	"github.com/aibrandtrack/brandtrack/internal/ai/gemini"
	"github.com/aibrandtrack/brandtrack/internal/ai/mock"
	"github.com/aibrandtrack/brandtrack/internal/ai/openai"
	"github.com/aibrandtrack/brandtrack/internal/ai/perplexity"
	"github.com/aibrandtrack/brandtrack/internal/config"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// NewProviders constructs one provider per configured name.
// Called once at server startup; every enabled provider is queried on
// each analysis run.
func NewProviders(cfg config.AIConfig) ([]models.AIProvider, error) {
	providers := make([]models.AIProvider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		switch name {
		case "openai":
			providers = append(providers, openai.NewProvider(cfg.OpenAI))
		case "anthropic":
			providers = append(providers, anthropic.NewProvider(cfg.Anthropic))
		case "perplexity":
			providers = append(providers, perplexity.NewProvider(cfg.Perplexity))
		case "gemini":
			providers = append(providers, gemini.NewProvider(cfg.Gemini))
		case "mock":
			providers = append(providers, mock.NewMockProvider())
		default:
			return nil, fmt.Errorf("unknown AI provider %q: must be one of openai, anthropic, perplexity, gemini, mock", name)
		}
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no AI providers configured")
	}
	return providers, nil
}
