package visibility

import (
	"errors"
	"testing"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

func TestRankingScore_TierBoundaries(t *testing.T) {
	tests := []struct {
		position float64
		expected float64
	}{
		{0, 50}, // no ranking data is neutral, not worst
		{0.5, 100},
		{1, 100},
		{1.01, 80},
		{3, 80},
		{3.5, 60},
		{5, 60},
		{7, 40},
		{10, 40},
		{11, 20},
		{50, 20},
	}

	for _, tt := range tests {
		got := rankingScore(tt.position)
		if got != tt.expected {
			t.Errorf("rankingScore(%v) = %v, want %v", tt.position, got, tt.expected)
		}
	}
}

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		sentiment models.Sentiment
		expected  float64
	}{
		{models.SentimentPositive, 100},
		{models.SentimentNeutral, 50},
		{models.SentimentNegative, 0},
	}
	for _, tt := range tests {
		got, err := SentimentScore(tt.sentiment)
		if err != nil {
			t.Fatalf("SentimentScore(%q) unexpected error: %v", tt.sentiment, err)
		}
		if got != tt.expected {
			t.Errorf("SentimentScore(%q) = %v, want %v", tt.sentiment, got, tt.expected)
		}
	}
}

func TestSentimentScore_RejectsUnknownCategory(t *testing.T) {
	_, err := SentimentScore("ecstatic")
	if !errors.Is(err, ErrUnknownSentiment) {
		t.Fatalf("expected ErrUnknownSentiment, got %v", err)
	}
}

func TestCalculateBrandStrength_CompositeFormula(t *testing.T) {
	// round(0.35*60 + 0.25*100 + 0.20*50 + 0.20*80) = round(21+25+10+16) = 72
	entity := models.CompetitorRanking{
		Name:            "Acme",
		IsOwn:           true,
		VisibilityScore: 60,
		Sentiment:       models.SentimentPositive,
		ShareOfVoice:    50,
		AveragePosition: 2,
	}
	strength, err := CalculateBrandStrength(entity)
	if err != nil {
		t.Fatal(err)
	}
	if strength.Score != 72 {
		t.Errorf("composite score = %d, want 72", strength.Score)
	}
	if strength.Breakdown.Visibility != 60 ||
		strength.Breakdown.Sentiment != 100 ||
		strength.Breakdown.ShareOfVoice != 50 ||
		strength.Breakdown.Ranking != 80 {
		t.Errorf("unexpected breakdown: %+v", strength.Breakdown)
	}
}

func TestCalculateBrandStrength_Bounded(t *testing.T) {
	entities := []models.CompetitorRanking{
		{Name: "min", VisibilityScore: -50, Sentiment: models.SentimentNegative, ShareOfVoice: -10, AveragePosition: 99},
		{Name: "max", VisibilityScore: 500, Sentiment: models.SentimentPositive, ShareOfVoice: 200, AveragePosition: 1},
		{Name: "mid", VisibilityScore: 33.3, Sentiment: models.SentimentNeutral, ShareOfVoice: 12.5, AveragePosition: 4},
	}
	for _, e := range entities {
		strength, err := CalculateBrandStrength(e)
		if err != nil {
			t.Fatal(err)
		}
		if strength.Score < 0 || strength.Score > 100 {
			t.Errorf("%s: composite %d out of [0,100]", e.Name, strength.Score)
		}
		for name, sub := range map[string]int{
			"visibility":     strength.Breakdown.Visibility,
			"sentiment":      strength.Breakdown.Sentiment,
			"share_of_voice": strength.Breakdown.ShareOfVoice,
			"ranking":        strength.Breakdown.Ranking,
		} {
			if sub < 0 || sub > 100 {
				t.Errorf("%s: %s sub-score %d out of [0,100]", e.Name, name, sub)
			}
		}
	}
}

func TestCalculateBrandStrength_VisibilityMonotonic(t *testing.T) {
	base := models.CompetitorRanking{
		Name:         "m",
		Sentiment:    models.SentimentNeutral,
		ShareOfVoice: 40,
		AveragePosition: 4,
	}
	prev := -1
	for vis := 0.0; vis <= 100; vis += 5 {
		e := base
		e.VisibilityScore = vis
		strength, err := CalculateBrandStrength(e)
		if err != nil {
			t.Fatal(err)
		}
		if strength.Score < prev {
			t.Fatalf("composite decreased from %d to %d when visibility rose to %v", prev, strength.Score, vis)
		}
		prev = strength.Score
	}
}

func TestCalculateBrandStrength_UnknownSentimentFails(t *testing.T) {
	_, err := CalculateBrandStrength(models.CompetitorRanking{Name: "bad", Sentiment: "meh"})
	if !errors.Is(err, ErrUnknownSentiment) {
		t.Fatalf("expected ErrUnknownSentiment, got %v", err)
	}
}

func TestCalculateAll_LastWriteWinsOnNameCollision(t *testing.T) {
	entities := []models.CompetitorRanking{
		{Name: "Acme", VisibilityScore: 10, Sentiment: models.SentimentNegative},
		{Name: "Rival", VisibilityScore: 20, Sentiment: models.SentimentNeutral},
		{Name: "Acme", VisibilityScore: 90, Sentiment: models.SentimentPositive, ShareOfVoice: 80, AveragePosition: 1},
	}

	scores, err := CalculateAll(entities)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 keyed entries, got %d", len(scores))
	}

	want, _ := CalculateBrandStrength(entities[2])
	if scores["Acme"] != want {
		t.Errorf("collision should resolve to the last entity: got %+v, want %+v", scores["Acme"], want)
	}
}
