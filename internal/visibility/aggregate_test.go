package visibility

import (
	"testing"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

func intPtr(n int) *int { return &n }

func TestBuildRankings(t *testing.T) {
	responses := []models.AIResponse{
		{
			Provider:       "openai",
			Response:       "1. Acme — strong choice\n2. Rival1",
			BrandMentioned: true,
			BrandPosition:  intPtr(1),
			Sentiment:      models.SentimentPositive,
			Rankings: []models.RankingEntry{
				{Company: "Acme", Position: 1},
				{Company: "Rival1", Position: 2},
			},
		},
		{
			Provider:       "anthropic",
			Response:       "Rival1 is the usual pick; Acme works too.",
			BrandMentioned: true,
			Sentiment:      models.SentimentNeutral,
		},
		{
			Provider:  "gemini",
			Response:  "Rival1 leads this space.",
			Sentiment: models.SentimentNeutral,
			Rankings:  []models.RankingEntry{{Company: "Rival1", Position: 1}},
		},
		{
			Provider:  "perplexity",
			Response:  "No specific vendors come to mind.",
			Sentiment: models.SentimentNeutral,
		},
	}

	entities := BuildRankings(responses, "Acme", []string{"Rival1", "Rival2", "", "acme"})

	// Brand + Rival1 + Rival2; blank and self-duplicate competitors dropped.
	if len(entities) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(entities))
	}

	brand := entities[0]
	if !brand.IsOwn || brand.Name != "Acme" {
		t.Fatalf("first entity should be the subject brand, got %+v", brand)
	}
	if brand.Mentions != 2 {
		t.Errorf("brand mentions = %d, want 2", brand.Mentions)
	}
	if brand.VisibilityScore != 50.0 {
		t.Errorf("brand visibility = %v, want 50.0", brand.VisibilityScore)
	}
	if brand.AveragePosition != 1 {
		t.Errorf("brand average position = %v, want 1", brand.AveragePosition)
	}

	rival := entities[1]
	if rival.Name != "Rival1" || rival.IsOwn {
		t.Fatalf("unexpected second entity %+v", rival)
	}
	if rival.Mentions != 3 {
		t.Errorf("rival mentions = %d, want 3", rival.Mentions)
	}

	if entities[2].Mentions != 0 || entities[2].ShareOfVoice != 0 {
		t.Errorf("unmentioned competitor should carry zero metrics, got %+v", entities[2])
	}

	// Shares: 2/5, 3/5, 0/5.
	if brand.ShareOfVoice != 40.0 || rival.ShareOfVoice != 60.0 {
		t.Errorf("shares = %v/%v, want 40/60", brand.ShareOfVoice, rival.ShareOfVoice)
	}
}

func TestBuildRankings_EmptyRun(t *testing.T) {
	entities := BuildRankings(nil, "Acme", []string{"Rival"})
	if len(entities) != 2 {
		t.Fatalf("expected entities even for an empty run, got %d", len(entities))
	}
	for _, e := range entities {
		if e.Mentions != 0 || e.VisibilityScore != 0 || e.ShareOfVoice != 0 {
			t.Errorf("empty run should produce zero metrics, got %+v", e)
		}
		if e.Sentiment != models.SentimentNeutral {
			t.Errorf("default sentiment should be neutral, got %q", e.Sentiment)
		}
	}
}

func TestBuildRankings_OutputPassesValidation(t *testing.T) {
	responses := []models.AIResponse{
		{Response: "Acme and Rival1 both appear here", BrandMentioned: true, Sentiment: models.SentimentPositive},
		{Response: "Rival1 only", Sentiment: models.SentimentNeutral},
		{Response: "nothing", Sentiment: models.SentimentNeutral},
	}
	entities := BuildRankings(responses, "Acme", []string{"Rival1"})
	res := ValidateAnalysis(entities, nil, responses)
	if !res.IsValid {
		t.Fatalf("aggregation output must satisfy the validator, got %v", res.Errors)
	}
}
