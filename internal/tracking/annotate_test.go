package tracking

import (
	"testing"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

func TestExtractRankings(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []models.RankingEntry
	}{
		{
			name: "dash separated list",
			text: "1. Acme Corp - established leader\n2. Globex - strong alternative\n3. Initech - smaller teams",
			want: []models.RankingEntry{
				{Company: "Acme Corp", Position: 1},
				{Company: "Globex", Position: 2},
				{Company: "Initech", Position: 3},
			},
		},
		{
			name: "paren and colon separated list",
			text: "1) Acme Corp: established leader\n2) Globex: strong alternative",
			want: []models.RankingEntry{
				{Company: "Acme Corp", Position: 1},
				{Company: "Globex", Position: 2},
			},
		},
		{
			name: "bold markdown names",
			text: "1. **Acme Corp** - established leader\n2. **Globex** - strong alternative",
			want: []models.RankingEntry{
				{Company: "Acme Corp", Position: 1},
				{Company: "Globex", Position: 2},
			},
		},
		{
			name: "bare names without trailing text",
			text: "1. Acme Corp\n2. Globex",
			want: []models.RankingEntry{
				{Company: "Acme Corp", Position: 1},
				{Company: "Globex", Position: 2},
			},
		},
		{
			name: "no numbered list",
			text: "Acme Corp is a popular choice among enterprises.",
			want: []models.RankingEntry{},
		},
		{
			name: "empty text",
			text: "",
			want: []models.RankingEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractRankings(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDetectSentiment(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		brand string
		want  models.Sentiment
	}{
		{
			name:  "positive keywords near brand",
			text:  "Acme Corp is the best and most reliable option on the market.",
			brand: "Acme Corp",
			want:  models.SentimentPositive,
		},
		{
			name:  "negative keywords near brand",
			text:  "Avoid Acme Corp, users report it is unreliable and expensive.",
			brand: "Acme Corp",
			want:  models.SentimentNegative,
		},
		{
			name:  "mention without loaded words",
			text:  "Acme Corp offers a CRM product. Globex also sells one.",
			brand: "Acme Corp",
			want:  models.SentimentNeutral,
		},
		{
			name:  "brand not mentioned",
			text:  "Globex is the best tool out there.",
			brand: "Acme Corp",
			want:  models.SentimentNeutral,
		},
		{
			name:  "praise for a different sentence's subject",
			text:  "Globex is excellent and the top choice. Acme Corp exists too.",
			brand: "Acme Corp",
			want:  models.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectSentiment(tt.text, tt.brand); got != tt.want {
				t.Errorf("DetectSentiment(%q, %q) = %s, want %s", tt.text, tt.brand, got, tt.want)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	text := "The top CRM tools:\n" +
		"1. Globex - excellent all-rounder\n" +
		"2. Acme Corp - reliable and trusted\n" +
		"3. Initech - budget pick\n" +
		"See https://example.com/crm-guide for details."

	resp := Annotate("openai", "best CRM tools", text, "Acme Corp")

	if resp.Provider != "openai" {
		t.Errorf("provider = %s, want openai", resp.Provider)
	}
	if resp.Prompt != "best CRM tools" {
		t.Errorf("prompt = %s", resp.Prompt)
	}
	if !resp.BrandMentioned {
		t.Error("expected BrandMentioned=true")
	}
	if len(resp.Rankings) != 3 {
		t.Fatalf("expected 3 rankings, got %d: %+v", len(resp.Rankings), resp.Rankings)
	}
	if resp.BrandPosition == nil || *resp.BrandPosition != 2 {
		t.Errorf("expected brand position 2, got %v", resp.BrandPosition)
	}
	if resp.Sentiment != models.SentimentPositive {
		t.Errorf("expected positive sentiment, got %s", resp.Sentiment)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].URL != "https://example.com/crm-guide" {
		t.Errorf("unexpected sources: %+v", resp.Sources)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestAnnotate_BrandAbsent(t *testing.T) {
	resp := Annotate("mock", "prompt", "1. Globex - fine\n2. Initech - fine", "Acme Corp")

	if resp.BrandMentioned {
		t.Error("expected BrandMentioned=false")
	}
	if resp.BrandPosition != nil {
		t.Errorf("expected nil brand position, got %d", *resp.BrandPosition)
	}
	if resp.Sentiment != models.SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %s", resp.Sentiment)
	}
}

func TestDefaultPrompts(t *testing.T) {
	prompts := DefaultPrompts("Acme Corp", "CRM tools")
	if len(prompts) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(prompts))
	}
	if prompts[0] != "What are the best CRM tools available today?" {
		t.Errorf("unexpected first prompt: %s", prompts[0])
	}

	fallback := DefaultPrompts("Acme Corp", "")
	if fallback[0] != "What are the best products available today?" {
		t.Errorf("unexpected fallback prompt: %s", fallback[0])
	}
}
