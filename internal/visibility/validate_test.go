package visibility

import (
	"strings"
	"testing"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

func TestValidateVisibility_MatchingScorePasses(t *testing.T) {
	entities := []models.CompetitorRanking{
		{Name: "Acme", Mentions: 7, VisibilityScore: 70.0},
	}
	res := ValidateVisibility(entities, 10)
	if !res.IsValid || len(res.Errors) != 0 {
		t.Fatalf("expected clean result, got errors %v", res.Errors)
	}
}

func TestValidateVisibility_MismatchIsErrorNamingEntity(t *testing.T) {
	entities := []models.CompetitorRanking{
		{Name: "Acme", Mentions: 7, VisibilityScore: 65.0},
	}
	res := ValidateVisibility(entities, 10)
	if res.IsValid {
		t.Fatal("expected invalid result")
	}
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0], "Acme") {
		t.Fatalf("expected one error naming the entity, got %v", res.Errors)
	}
}

func TestValidateVisibility_WithinToleranceAfterRounding(t *testing.T) {
	// 1/3 of 12 responses = 8.333... -> rounds to 8.3
	entities := []models.CompetitorRanking{
		{Name: "Rival", Mentions: 1, VisibilityScore: 8.3},
	}
	res := ValidateVisibility(entities, 12)
	if !res.IsValid {
		t.Fatalf("rounded score within 0.1 should pass, got %v", res.Errors)
	}
}

func TestValidateVisibility_MentionsExceedTotalIsWarningNotCrash(t *testing.T) {
	entities := []models.CompetitorRanking{
		{Name: "Glitch", Mentions: 15, VisibilityScore: 150.0},
	}
	res := ValidateVisibility(entities, 10)
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for mentions > total responses")
	}
}

func TestValidateShareOfVoice_Tolerance(t *testing.T) {
	within := []models.CompetitorRanking{
		{Name: "a", ShareOfVoice: 40}, {Name: "b", ShareOfVoice: 35}, {Name: "c", ShareOfVoice: 24},
	}
	res := ValidateShareOfVoice(within)
	if len(res.Warnings) != 0 {
		t.Errorf("sum 99 is within tolerance, got warnings %v", res.Warnings)
	}

	outside := []models.CompetitorRanking{
		{Name: "a", ShareOfVoice: 40}, {Name: "b", ShareOfVoice: 35}, {Name: "c", ShareOfVoice: 20},
	}
	res = ValidateShareOfVoice(outside)
	if len(res.Warnings) != 1 {
		t.Errorf("sum 95 should warn, got %v", res.Warnings)
	}
	if !res.IsValid {
		t.Error("share-of-voice drift is a warning, never an error")
	}
}

func TestValidateShareOfVoice_AllZeroIsQuiet(t *testing.T) {
	entities := []models.CompetitorRanking{{Name: "a"}, {Name: "b"}}
	res := ValidateShareOfVoice(entities)
	if len(res.Warnings) != 0 {
		t.Errorf("an all-zero run should not warn, got %v", res.Warnings)
	}
}

func TestValidateProviderBreakdown(t *testing.T) {
	aggregate := []models.CompetitorRanking{
		{Name: "Acme", VisibilityScore: 60},
		{Name: "Rival1", VisibilityScore: 30},
		{Name: "Ghost", VisibilityScore: 0},
	}
	byProvider := map[string][]models.CompetitorRanking{
		"openai": {
			{Name: "Acme", VisibilityScore: 50},
			{Name: "Stranger", VisibilityScore: 10}, // not in aggregate
		},
	}

	res := ValidateProviderBreakdown(aggregate, byProvider)
	if !res.IsValid {
		t.Error("breakdown mismatches are warnings, never errors")
	}

	var sawStranger, sawRival, sawGhost bool
	for _, w := range res.Warnings {
		if strings.Contains(w, "Stranger") {
			sawStranger = true
		}
		if strings.Contains(w, "Rival1") {
			sawRival = true
		}
		if strings.Contains(w, "Ghost") {
			sawGhost = true
		}
	}
	if !sawStranger {
		t.Error("provider-only entity should warn")
	}
	if !sawRival {
		t.Error("visible aggregate entity missing from provider should warn")
	}
	if sawGhost {
		t.Error("zero-visibility entity missing from provider must not warn")
	}
}

func TestValidateBrandMentions_OffByOneIsWarning(t *testing.T) {
	brand := models.CompetitorRanking{Name: "Acme", IsOwn: true, Mentions: 3, VisibilityScore: 75.0}
	responses := []models.AIResponse{
		{BrandMentioned: true},
		{Rankings: []models.RankingEntry{{Company: "Acme", Position: 1}}},
		{Response: "nothing relevant"},
		{Response: "still nothing"},
	}
	// recomputed = 2, stored = 3 -> off by one
	res := ValidateBrandMentions(brand, responses, 4)
	if len(res.Warnings) == 0 {
		t.Fatal("off-by-one should produce a warning")
	}
	for _, e := range res.Errors {
		if strings.Contains(e, "mention count") {
			t.Fatalf("off-by-one must not be an error: %v", e)
		}
	}
}

func TestValidateBrandMentions_LargerDriftIsError(t *testing.T) {
	brand := models.CompetitorRanking{Name: "Acme", IsOwn: true, Mentions: 5, VisibilityScore: 100.0}
	responses := []models.AIResponse{
		{Response: "no brands"},
		{Response: "none here either"},
	}
	res := ValidateBrandMentions(brand, responses, 2)
	if res.IsValid {
		t.Fatal("drift of 5 must be an error")
	}
}

func TestValidateAnalysis_EndToEndScenario(t *testing.T) {
	responses := make([]models.AIResponse, 10)
	for i := 0; i < 6; i++ {
		responses[i] = models.AIResponse{BrandMentioned: true}
	}
	aggregate := []models.CompetitorRanking{
		{Name: "Acme", IsOwn: true, Mentions: 6, VisibilityScore: 60, ShareOfVoice: 50, Sentiment: models.SentimentPositive, AveragePosition: 2},
		{Name: "Rival1", Mentions: 3, VisibilityScore: 30, ShareOfVoice: 30, Sentiment: models.SentimentNeutral, AveragePosition: 5},
		{Name: "Rival2", Mentions: 1, VisibilityScore: 10, ShareOfVoice: 20, Sentiment: models.SentimentNegative, AveragePosition: 8},
	}

	res := ValidateAnalysis(aggregate, nil, responses)
	if !res.IsValid {
		t.Fatalf("scenario should validate cleanly, got errors %v", res.Errors)
	}
}

func TestMergeResults(t *testing.T) {
	a := models.ValidationResult{IsValid: true, Errors: []string{}, Warnings: []string{"w1"}}
	b := models.ValidationResult{IsValid: false, Errors: []string{"e1"}, Warnings: []string{}}

	merged := mergeResults(a, b)
	if merged.IsValid {
		t.Error("any invalid input makes the union invalid")
	}
	if len(merged.Errors) != 1 || len(merged.Warnings) != 1 {
		t.Errorf("expected union of messages, got %+v", merged)
	}
}
