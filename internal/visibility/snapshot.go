package visibility

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// ErrBrandNotFound is returned when an analysis contains no entity for the
// subject brand. Callers treat it as "skip the snapshot", never as a
// failure of the parent save.
var ErrBrandNotFound = errors.New("subject brand not found in analysis")

// Direction changes smaller than this are reported as flat; absorbs
// one-decimal rounding drift in stored scores.
const trendEpsilon = 0.05

// ExtractSnapshotMetrics locates the subject brand in an analysis and
// derives the metric set to persist as a snapshot. Rank is the brand's
// 1-based position when all entities are ordered by descending composite
// strength, ties broken by higher visibility, then input order.
func ExtractSnapshotMetrics(analysis *models.BrandAnalysis, brandName string) (models.SnapshotMetrics, error) {
	idx := findBrand(analysis.Competitors, brandName)
	if idx < 0 {
		return models.SnapshotMetrics{}, fmt.Errorf("%w: %q", ErrBrandNotFound, brandName)
	}
	brand := analysis.Competitors[idx]

	rank, err := brandRank(analysis.Competitors, idx)
	if err != nil {
		return models.SnapshotMetrics{}, err
	}

	sentScore := brand.SentimentScore
	if sentScore == 0 && brand.Sentiment != models.SentimentNegative {
		// SentimentScore is derived; recompute when the aggregate carries
		// only the category.
		if s, serr := SentimentScore(brand.Sentiment); serr == nil {
			sentScore = s
		}
	}

	return models.SnapshotMetrics{
		VisibilityScore: brand.VisibilityScore,
		SentimentScore:  sentScore,
		ShareOfVoice:    brand.ShareOfVoice,
		AveragePosition: brand.AveragePosition,
		Rank:            rank,
	}, nil
}

// brandRank sorts a copy of the entity list by composite strength and
// returns the 1-based position of the entity at originalIdx.
func brandRank(entities []models.CompetitorRanking, originalIdx int) (int, error) {
	type scored struct {
		idx   int
		score int
		vis   float64
	}
	order := make([]scored, len(entities))
	for i, e := range entities {
		strength, err := CalculateBrandStrength(e)
		if err != nil {
			return 0, err
		}
		order[i] = scored{idx: i, score: strength.Score, vis: e.VisibilityScore}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		return order[i].vis > order[j].vis
	})
	for pos, s := range order {
		if s.idx == originalIdx {
			return pos + 1, nil
		}
	}
	return 0, fmt.Errorf("entity index %d not found after ranking", originalIdx)
}

// CalculateTrends computes per-metric movement between the oldest and the
// newest snapshot of a newest-first sequence. Fewer than two snapshots
// yields the no-trend sentinel (HasData false) rather than an error.
func CalculateTrends(snapshots []models.Snapshot) models.Trends {
	if len(snapshots) < 2 {
		return models.Trends{HasData: false, SampleCount: len(snapshots)}
	}
	newest := snapshots[0]
	oldest := snapshots[len(snapshots)-1]

	return models.Trends{
		HasData:         true,
		SampleCount:     len(snapshots),
		Visibility:      metricTrend(oldest.VisibilityScore, newest.VisibilityScore),
		Sentiment:       metricTrend(oldest.SentimentScore, newest.SentimentScore),
		ShareOfVoice:    metricTrend(oldest.ShareOfVoice, newest.ShareOfVoice),
		AveragePosition: metricTrend(oldest.AveragePosition, newest.AveragePosition),
		Rank:            metricTrend(float64(oldest.Rank), float64(newest.Rank)),
	}
}

func metricTrend(oldVal, newVal float64) models.MetricTrend {
	delta := newVal - oldVal

	direction := models.TrendFlat
	switch {
	case delta > trendEpsilon:
		direction = models.TrendUp
	case delta < -trendEpsilon:
		direction = models.TrendDown
	}

	percent := delta
	if oldVal != 0 {
		percent = delta / oldVal * 100
	}

	return models.MetricTrend{Direction: direction, Delta: delta, Percent: percent}
}

// findBrand prefers the entity flagged IsOwn, falling back to a
// case-insensitive name match.
func findBrand(entities []models.CompetitorRanking, brandName string) int {
	for i, e := range entities {
		if e.IsOwn {
			return i
		}
	}
	for i, e := range entities {
		if strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(brandName)) {
			return i
		}
	}
	return -1
}
