package visibility

import (
	"errors"
	"fmt"
	"math"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// Composite score weights. Must sum to 1.0 exactly.
const (
	weightVisibility   = 0.35
	weightSentiment    = 0.25
	weightShareOfVoice = 0.20
	weightRanking      = 0.20
)

// ErrUnknownSentiment indicates an out-of-contract sentiment category.
var ErrUnknownSentiment = errors.New("unknown sentiment category")

// SentimentScore maps the three-way sentiment category to a 0-100 score.
// Any other value is an upstream contract violation.
func SentimentScore(s models.Sentiment) (float64, error) {
	switch s {
	case models.SentimentPositive:
		return 100, nil
	case models.SentimentNeutral:
		return 50, nil
	case models.SentimentNegative:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSentiment, s)
	}
}

// rankingScore tiers an average position into a 0-100 sub-score. A position
// of 0 means "no ranking data" and scores neutral, not worst.
func rankingScore(position float64) float64 {
	switch {
	case position <= 0:
		return 50
	case position <= 1:
		return 100
	case position <= 3:
		return 80
	case position <= 5:
		return 60
	case position <= 10:
		return 40
	default:
		return 20
	}
}

// CalculateBrandStrength computes the composite 0-100 AI brand strength
// score and its four sub-scores for one entity. Pure; the only failure mode
// is a malformed sentiment category.
func CalculateBrandStrength(entity models.CompetitorRanking) (models.BrandStrength, error) {
	vis := clamp(entity.VisibilityScore, 0, 100)
	sent, err := SentimentScore(entity.Sentiment)
	if err != nil {
		return models.BrandStrength{}, fmt.Errorf("entity %q: %w", entity.Name, err)
	}
	sov := clamp(entity.ShareOfVoice, 0, 100)
	rank := rankingScore(entity.AveragePosition)

	composite := weightVisibility*vis + weightSentiment*sent + weightShareOfVoice*sov + weightRanking*rank
	score := int(clamp(math.Round(composite), 0, 100))

	return models.BrandStrength{
		Score: score,
		Breakdown: models.StrengthBreakdown{
			Visibility:   int(math.Round(vis)),
			Sentiment:    int(math.Round(sent)),
			ShareOfVoice: int(math.Round(sov)),
			Ranking:      int(math.Round(rank)),
		},
	}, nil
}

// CalculateAll maps CalculateBrandStrength over a list of entities, keyed
// by name. Name collisions resolve last-write-wins.
func CalculateAll(entities []models.CompetitorRanking) (map[string]models.BrandStrength, error) {
	out := make(map[string]models.BrandStrength, len(entities))
	for _, e := range entities {
		strength, err := CalculateBrandStrength(e)
		if err != nil {
			return nil, err
		}
		out[e.Name] = strength
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
