// Package visibility implements the brand-visibility core: mention
// detection, composite strength scoring, consistency validation, and
// snapshot metric extraction. Everything in this package is pure — no I/O,
// no shared state.
package visibility

import (
	"regexp"
	"strings"

	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// Matches reports whether entityName is mentioned in responseText.
// Any one of the checks below is sufficient:
//   - case-insensitive substring containment
//   - case-insensitive word-boundary match
//   - compound-name match: the name followed by "+", "&", or whitespace and
//     a capital letter (e.g. "Tea Burn + Control Coffee")
//   - literal containment of the verbatim, lowercase, uppercase, or
//     title-case form
//
// An empty or whitespace-only name never matches anything.
func Matches(responseText, entityName string) bool {
	name := strings.TrimSpace(entityName)
	if name == "" || responseText == "" {
		return false
	}

	if strings.Contains(strings.ToLower(responseText), strings.ToLower(name)) {
		return true
	}

	escaped := regexp.QuoteMeta(name)
	if re, err := regexp.Compile(`(?i)\b` + escaped + `\b`); err == nil && re.MatchString(responseText) {
		return true
	}

	// Name case-insensitive, but the compound continuation must start with
	// an actual capital letter.
	if re, err := regexp.Compile(`(?i:` + escaped + `)(\s*[+&]|\s+[A-Z])`); err == nil && re.MatchString(responseText) {
		return true
	}

	for _, variant := range []string{name, strings.ToLower(name), strings.ToUpper(name), titleCase(name)} {
		if strings.Contains(responseText, variant) {
			return true
		}
	}
	return false
}

// RankedIn reports whether name appears in the response's extracted company
// rankings, matching case-insensitively and substring-in-either-direction.
func RankedIn(r models.AIResponse, name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return false
	}
	for _, entry := range r.Rankings {
		c := strings.ToLower(strings.TrimSpace(entry.Company))
		if c == "" {
			continue
		}
		if strings.Contains(c, n) || strings.Contains(n, c) {
			return true
		}
	}
	return false
}

// BrandMentionedIn is the mention predicate for the subject brand: the
// upstream mention flag, or presence in the response's rankings.
func BrandMentionedIn(r models.AIResponse, brandName string) bool {
	return r.BrandMentioned || RankedIn(r, brandName)
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
