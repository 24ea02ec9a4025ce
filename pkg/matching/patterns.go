package matching

import "strings"

// skillPlaceholder is substituted with the candidate skill name when a
// pattern template is expanded.
const skillPlaceholder = "{skill}"

// DefaultPatterns are the phrase templates the direct matcher recognizes in
// its pattern pass. The registry is a configuration knob; alternative
// template sets may be supplied.
var DefaultPatterns = []string{
	"use {skill}",
	"apply {skill}",
	"run {skill}",
	"execute {skill}",
	"{skill} skill",
	"deploy with {skill}",
	"set up {skill}",
	"configure {skill}",
}

// PatternRegistry holds the phrase templates for pattern matching.
type PatternRegistry struct {
	patterns []string
}

// NewPatternRegistry creates a registry with the given templates, or the
// defaults when none are supplied.
func NewPatternRegistry(patterns ...string) *PatternRegistry {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return &PatternRegistry{patterns: patterns}
}

// Patterns returns the registered templates.
func (r *PatternRegistry) Patterns() []string {
	return r.patterns
}

// Expand substitutes a skill name into a template.
func (r *PatternRegistry) Expand(pattern, skillName string) string {
	return strings.ReplaceAll(pattern, skillPlaceholder, skillName)
}
