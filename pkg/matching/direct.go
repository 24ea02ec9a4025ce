package matching

import (
	"sort"
	"strings"

	"github.com/routelab/skillrouter/pkg/catalog"
)

const (
	exactConfidence   = 1.0
	patternConfidence = 0.9
)

// DirectMatcher recognizes queries that name a catalog skill outright
// (exact pass) or through a common request phrase like "use X" (pattern
// pass). Longer skill names win over shorter ones so that terraform-base
// is never shadowed by terraform.
type DirectMatcher struct {
	registry *PatternRegistry
}

// NewDirectMatcher creates a matcher with the given pattern registry, or
// the default registry when nil.
func NewDirectMatcher(registry *PatternRegistry) *DirectMatcher {
	if registry == nil {
		registry = NewPatternRegistry()
	}
	return &DirectMatcher{registry: registry}
}

// Match runs the exact pass, then the pattern pass, over the catalog's
// skills. The query must already be normalized.
func (m *DirectMatcher) Match(query string, cat *catalog.Catalog) SkillMatch {
	if query == "" || len(cat.Skills) == 0 {
		return SkillMatch{}
	}

	names := cat.SkillNames()
	sort.SliceStable(names, func(i, j int) bool {
		return len(names[i]) > len(names[j])
	})

	for _, name := range names {
		if strings.Contains(query, strings.ToLower(name)) {
			return SkillMatch{Name: name, Kind: MatchExact, Confidence: exactConfidence}
		}
	}

	for _, name := range names {
		for _, pattern := range m.registry.Patterns() {
			expanded := Normalize(m.registry.Expand(pattern, name))
			if expanded != "" && strings.Contains(query, expanded) {
				return SkillMatch{Name: name, Kind: MatchPattern, Confidence: patternConfidence}
			}
		}
	}

	return SkillMatch{}
}
