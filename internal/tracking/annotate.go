package tracking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aibrandtrack/brandtrack/internal/visibility"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// numberedItem matches one line of a numbered list, e.g. "1. Acme Corp - blurb"
// or "2) Globex: blurb". The company name is whatever precedes the first
// separator on the line.
var numberedItem = regexp.MustCompile(`(?m)^\s*(\d{1,2})[.)]\s+\**([^*\n:–—-]+?)\**\s*(?:[:–—-]|$)`)

// urlPattern extracts bare links from response text for citation counting.
var urlPattern = regexp.MustCompile(`https?://[^\s)>\]]+`)

var positiveWords = []string{
	"best", "leading", "excellent", "recommended", "top choice", "most popular",
	"reliable", "trusted", "outstanding", "strong", "powerful", "great",
}

var negativeWords = []string{
	"avoid", "worst", "poor", "unreliable", "expensive", "lacking",
	"outdated", "complaints", "weak", "disappointing", "limited", "buggy",
}

// ExtractRankings parses an ordered recommendation list out of raw response
// text. Items past position 20 are ignored; a response with no numbered list
// yields an empty slice.
func ExtractRankings(text string) []models.RankingEntry {
	matches := numberedItem.FindAllStringSubmatch(text, -1)
	rankings := make([]models.RankingEntry, 0, len(matches))
	for _, m := range matches {
		pos, err := strconv.Atoi(m[1])
		if err != nil || pos < 1 || pos > 20 {
			continue
		}
		company := strings.TrimSpace(m[2])
		if company == "" {
			continue
		}
		rankings = append(rankings, models.RankingEntry{Company: company, Position: pos})
	}
	return rankings
}

// DetectSentiment scores response text toward the named brand by counting
// positive and negative keywords in the sentences that mention it. A brand
// never mentioned reads as neutral.
func DetectSentiment(text, brandName string) models.Sentiment {
	if !visibility.Matches(text, brandName) {
		return models.SentimentNeutral
	}

	var pos, neg int
	for _, sentence := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	}) {
		if !visibility.Matches(sentence, brandName) {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, w := range positiveWords {
			if strings.Contains(lower, w) {
				pos++
			}
		}
		for _, w := range negativeWords {
			if strings.Contains(lower, w) {
				neg++
			}
		}
	}

	switch {
	case pos > neg:
		return models.SentimentPositive
	case neg > pos:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// extractCitations pulls source links out of the text.
func extractCitations(text string) []models.Citation {
	urls := urlPattern.FindAllString(text, -1)
	if len(urls) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(urls))
	citations := make([]models.Citation, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimRight(u, ".,;")
		if seen[u] {
			continue
		}
		seen[u] = true
		citations = append(citations, models.Citation{URL: u})
	}
	return citations
}

// Annotate turns a raw provider completion into a structured AIResponse:
// extracted rankings, the brand's position within them, a mention flag, and
// keyword sentiment.
func Annotate(provider, prompt, text, brandName string) models.AIResponse {
	rankings := ExtractRankings(text)

	resp := models.AIResponse{
		Provider:       provider,
		Prompt:         prompt,
		Response:       text,
		BrandMentioned: visibility.Matches(text, brandName),
		Rankings:       rankings,
		Sentiment:      DetectSentiment(text, brandName),
		Confidence:     1.0,
		Sources:        extractCitations(text),
		Timestamp:      time.Now().UTC(),
	}

	for _, r := range rankings {
		if visibility.Matches(r.Company, brandName) || visibility.Matches(brandName, r.Company) {
			pos := r.Position
			resp.BrandPosition = &pos
			break
		}
	}

	return resp
}

// DefaultPrompts builds the standard question set asked of every provider for
// a tracked brand.
func DefaultPrompts(companyName, category string) []string {
	if category == "" {
		category = "products"
	}
	return []string{
		fmt.Sprintf("What are the best %s available today?", category),
		fmt.Sprintf("Can you recommend top alternatives to %s?", companyName),
		fmt.Sprintf("What do people say about %s?", companyName),
	}
}
