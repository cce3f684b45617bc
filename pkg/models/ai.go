// Package models contains shared data models used across the BrandTrack codebase.
package models

import (
	"context"
	"time"
)

// AIProvider is the core interface that all AI integrations must implement.
// Never call specific AI providers directly — always inject this interface.
type AIProvider interface {
	// Ask sends a single prompt and returns the raw completion text.
	Ask(ctx context.Context, prompt string) (string, error)
	// Name returns the provider identifier (e.g., "openai", "perplexity").
	Name() string
}

// RankingEntry is one company extracted from an ordered list in a response.
type RankingEntry struct {
	Company  string `json:"company"`
	Position int    `json:"position"`
}

// Citation is a source reference attached to a response. Only the count is
// used by exports; the fields are carried through verbatim.
type Citation struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// AIResponse is one captured AI-provider answer within an analysis run,
// annotated by upstream processing (mention flag, extracted rankings,
// sentiment).
type AIResponse struct {
	Provider       string         `json:"provider"`
	Prompt         string         `json:"prompt"`
	Response       string         `json:"response"`
	BrandMentioned bool           `json:"brand_mentioned"`
	Rankings       []RankingEntry `json:"rankings,omitempty"`
	BrandPosition  *int           `json:"brand_position,omitempty"`
	Sentiment      Sentiment      `json:"sentiment"`
	Confidence     float64        `json:"confidence"`
	Sources        []Citation     `json:"sources,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}
