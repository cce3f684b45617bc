package urls

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare domain", "example.com", "example.com"},
		{"https scheme", "https://example.com", "example.com"},
		{"http scheme", "http://example.com", "example.com"},
		{"www prefix", "www.example.com", "example.com"},
		{"scheme and www", "https://www.example.com", "example.com"},
		{"trailing slash", "https://example.com/", "example.com"},
		{"path discarded", "https://www.example.com/pricing/plans", "example.com"},
		{"query discarded with path", "example.com/page?ref=x", "example.com"},
		{"mixed case", "HTTPS://WWW.Example.COM/Page/", "example.com"},
		{"subdomain kept", "https://app.example.com", "app.example.com"},
		{"whitespace trimmed", "  example.com  ", "example.com"},
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"https://www.Example.com/page/",
		"example.com",
		"HTTP://sub.domain.io/a/b?c=d",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestMatch(t *testing.T) {
	if !Match("https://www.Example.com/page/", "example.com") {
		t.Error("expected spelling variants of the same domain to match")
	}
	if Match("example.com", "other.com") {
		t.Error("different domains must not match")
	}
	if Match("", "") {
		t.Error("empty input must never match")
	}
	if Match("   ", "https://") {
		t.Error("unusable input must never match")
	}
}
