package visibility

import (
	"strings"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// BuildRankings aggregates raw annotated responses into one
// CompetitorRanking per tracked entity. The subject brand is counted via
// the mention-flag-or-rankings predicate; competitors via text matching or
// rankings presence. Visibility and share of voice are rounded to one
// decimal so they satisfy the validator's tolerance directly.
func BuildRankings(responses []models.AIResponse, brandName string, competitors []string) []models.CompetitorRanking {
	total := len(responses)
	entities := make([]models.CompetitorRanking, 0, len(competitors)+1)

	entities = append(entities, buildEntity(responses, brandName, true, total))
	for _, c := range competitors {
		if strings.TrimSpace(c) == "" || strings.EqualFold(c, brandName) {
			continue
		}
		entities = append(entities, buildEntity(responses, c, false, total))
	}

	// Share of voice: each entity's slice of all detected mentions.
	var totalMentions int
	for _, e := range entities {
		totalMentions += e.Mentions
	}
	for i := range entities {
		if totalMentions > 0 {
			entities[i].ShareOfVoice = round1(float64(entities[i].Mentions) / float64(totalMentions) * 100)
		}
	}
	return entities
}

func buildEntity(responses []models.AIResponse, name string, isOwn bool, total int) models.CompetitorRanking {
	mentions := 0
	var positionSum float64
	positionCount := 0
	sentimentVotes := map[models.Sentiment]int{}

	for _, r := range responses {
		mentioned := false
		if isOwn {
			mentioned = BrandMentionedIn(r, name)
		} else {
			mentioned = Matches(r.Response, name) || RankedIn(r, name)
		}
		if !mentioned {
			continue
		}
		mentions++
		sentimentVotes[r.Sentiment]++

		if isOwn && r.BrandPosition != nil && *r.BrandPosition > 0 {
			positionSum += float64(*r.BrandPosition)
			positionCount++
		} else if !isOwn {
			if pos := rankedPosition(r, name); pos > 0 {
				positionSum += float64(pos)
				positionCount++
			}
		}
	}

	var visibility float64
	if total > 0 {
		visibility = round1(float64(mentions) / float64(total) * 100)
	}
	var avgPosition float64
	if positionCount > 0 {
		avgPosition = round1(positionSum / float64(positionCount))
	}

	sentiment := majoritySentiment(sentimentVotes)
	sentScore, _ := SentimentScore(sentiment)

	return models.CompetitorRanking{
		Name:            name,
		IsOwn:           isOwn,
		Mentions:        mentions,
		VisibilityScore: visibility,
		Sentiment:       sentiment,
		SentimentScore:  sentScore,
		AveragePosition: avgPosition,
	}
}

func rankedPosition(r models.AIResponse, name string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range r.Rankings {
		c := strings.ToLower(strings.TrimSpace(entry.Company))
		if c == "" {
			continue
		}
		if strings.Contains(c, n) || strings.Contains(n, c) {
			return entry.Position
		}
	}
	return 0
}

// majoritySentiment picks the most common category across mentioned
// responses, defaulting to neutral. Ties resolve toward the less extreme
// category (neutral over positive over negative).
func majoritySentiment(votes map[models.Sentiment]int) models.Sentiment {
	best := models.SentimentNeutral
	bestCount := votes[models.SentimentNeutral]
	for _, s := range []models.Sentiment{models.SentimentPositive, models.SentimentNegative} {
		if votes[s] > bestCount {
			best = s
			bestCount = votes[s]
		}
	}
	return best
}
