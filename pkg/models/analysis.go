package models

import (
	"time"

	"github.com/google/uuid"
)

// Sentiment is the categorical tone of an entity's mentions.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// CompetitorRanking holds the aggregated metrics for one tracked entity
// (the subject brand or a competitor) within a single analysis run.
type CompetitorRanking struct {
	Name            string    `json:"name"`
	IsOwn           bool      `json:"is_own"`
	Mentions        int       `json:"mentions"`
	VisibilityScore float64   `json:"visibility_score"`
	Sentiment       Sentiment `json:"sentiment"`
	SentimentScore  float64   `json:"sentiment_score"`
	ShareOfVoice    float64   `json:"share_of_voice"`
	// AveragePosition of 0 means "no ranking data", not position zero.
	AveragePosition float64  `json:"average_position"`
	WeeklyChange    *float64 `json:"weekly_change,omitempty"`
}

// BrandAnalysis is one persisted analysis run. The competitor list and the
// raw responses are owned by the run and stored together.
type BrandAnalysis struct {
	ID          uuid.UUID           `db:"id"           json:"id"`
	TenantID    uuid.UUID           `db:"tenant_id"    json:"tenant_id"`
	URL         string              `db:"url"          json:"url"`
	CompanyName string              `db:"company_name" json:"company_name"`
	Competitors []CompetitorRanking `db:"competitors"  json:"competitors"`
	Responses   []AIResponse        `db:"responses"    json:"responses"`
	CreatedAt   time.Time           `db:"created_at"   json:"created_at"`
}

// TotalResponses returns the number of captured AI responses in the run.
func (a *BrandAnalysis) TotalResponses() int {
	return len(a.Responses)
}

// StrengthBreakdown holds the four 0-100 sub-scores behind a composite
// brand strength score.
type StrengthBreakdown struct {
	Visibility   int `json:"visibility"`
	Sentiment    int `json:"sentiment"`
	ShareOfVoice int `json:"share_of_voice"`
	Ranking      int `json:"ranking"`
}

// BrandStrength is the composite 0-100 AI brand strength score for one
// entity. Derived and ephemeral: recomputed on demand, never persisted.
type BrandStrength struct {
	Score     int               `json:"score"`
	Breakdown StrengthBreakdown `json:"breakdown"`
}

// ValidationResult carries the outcome of a consistency check. Errors and
// warnings are data, not exceptions; the caller decides whether to block
// or merely log when IsValid is false.
type ValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
