package perplexity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	ai "github.com/aibrandtrack/brandtrack/internal/ai/aierrors"
	"github.com/aibrandtrack/brandtrack/internal/config"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// Provider implements models.AIProvider using the Perplexity chat API.
// Perplexity speaks the OpenAI chat-completions wire format.
type Provider struct {
	client *resty.Client
	cfg    config.PerplexityConfig
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

func NewProvider(cfg config.PerplexityConfig) *Provider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(2 * time.Minute).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")
	return &Provider{client: client, cfg: cfg}
}

func (p *Provider) Name() string { return "perplexity" }

func (p *Provider) Ask(ctx context.Context, prompt string) (string, error) {
	var out chatResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:    p.cfg.Model,
			Messages: []message{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("perplexity: %w", ai.ErrInferenceTimeout)
		}
		return "", fmt.Errorf("perplexity: %w: %v", ai.ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("perplexity: %w: status %d", ai.ErrProviderUnavailable, resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("perplexity: %w: empty choices", ai.ErrInvalidResponse)
	}
	return out.Choices[0].Message.Content, nil
}

var _ models.AIProvider = (*Provider)(nil)
