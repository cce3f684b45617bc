// Package urls canonicalizes brand and competitor URLs so that snapshots
// recorded under differently-spelled URLs group as the same tracked entity.
package urls

import "strings"

// Normalize lowercases the input, strips the scheme, a leading "www.", and
// everything from the first path separator onward, leaving the bare domain.
// Empty or whitespace-only input returns "" rather than an error so callers
// can treat it as "no match".
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Match reports whether two raw URLs normalize to the same domain.
// Unusable input on either side never matches.
func Match(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}
