package anthropic

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

const apiVersion = "2023-06-01"

// Provider implements models.AIProvider using the Anthropic Messages API.
type Provider struct {
	client *resty.Client
	cfg    config.AnthropicConfig
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func NewProvider(cfg config.AnthropicConfig) *Provider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(2 * time.Minute).
		SetHeader("x-api-key", cfg.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("Content-Type", "application/json")
	return &Provider{client: client, cfg: cfg}
}

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Ask(ctx context.Context, prompt string) (string, error) {
	var out messagesResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(messagesRequest{
			Model:     p.cfg.Model,
			MaxTokens: 4096,
			Messages:  []message{{Role: "user", Content: prompt}},
		}).
		SetResult(&out).
		Post("/v1/messages")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("anthropic: %w", ai.ErrInferenceTimeout)
		}
		return "", fmt.Errorf("anthropic: %w: %v", ai.ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic: %w: status %d", ai.ErrProviderUnavailable, resp.StatusCode())
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("anthropic: %w: empty content", ai.ErrInvalidResponse)
	}
	return out.Content[0].Text, nil
}

var _ models.AIProvider = (*Provider)(nil)
