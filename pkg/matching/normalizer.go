// Package matching implements the deterministic routing tiers: query
// normalization, direct skill-name matching (Tier 1), and task trigger
// matching by word overlap (Tier 2). Matching is purely lexical and
// performs no I/O.
package matching

import "strings"

// Normalize canonicalizes a raw query for matching: surrounding whitespace
// is stripped, letters are lowercased, ASCII quotes become spaces so that
// 'name' and "name" surface the bare name, and runs of whitespace collapse
// to single spaces. Hyphens, digits, and other punctuation are preserved so
// identifiers like aws-ecs-deployment survive. Normalize is idempotent; an
// empty or whitespace-only query normalizes to the empty string.
func Normalize(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	normalized = strings.Map(func(r rune) rune {
		if r == '\'' || r == '"' {
			return ' '
		}
		return r
	}, normalized)
	return strings.Join(strings.Fields(normalized), " ")
}

// Tokenize splits text into its set of whitespace-separated tokens after
// lowercasing. Used for trigger coverage scoring.
func Tokenize(text string) map[string]bool {
	tokens := map[string]bool{}
	for _, word := range strings.Fields(strings.ToLower(text)) {
		tokens[word] = true
	}
	return tokens
}
