package gemini

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

// Provider implements models.AIProvider using the Gemini generateContent API.
type Provider struct {
	client *resty.Client
	cfg    config.GeminiConfig
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(2 * time.Minute).
		SetHeader("Content-Type", "application/json")
	return &Provider{client: client, cfg: cfg}
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Ask(ctx context.Context, prompt string) (string, error) {
	var out generateResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", p.cfg.APIKey).
		SetBody(generateRequest{
			Contents: []content{{Parts: []part{{Text: prompt}}}},
		}).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", p.cfg.Model))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("gemini: %w", ai.ErrInferenceTimeout)
		}
		return "", fmt.Errorf("gemini: %w: %v", ai.ErrProviderUnavailable, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini: %w: status %d", ai.ErrProviderUnavailable, resp.StatusCode())
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w: empty candidates", ai.ErrInvalidResponse)
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

var _ models.AIProvider = (*Provider)(nil)
