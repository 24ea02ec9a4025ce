package matching

// MatchKind discriminates how the direct matcher found a skill.
type MatchKind string

const (
	// MatchExact means the skill name itself appeared in the query.
	MatchExact MatchKind = "exact"
	// MatchPattern means an expanded phrase template appeared in the query.
	MatchPattern MatchKind = "pattern"
)

// SkillMatch is the outcome of a Tier 1 direct match. A zero SkillMatch
// (empty Name) means no match.
type SkillMatch struct {
	Name       string
	Kind       MatchKind
	Confidence float64
}

// Matched reports whether a skill was found.
func (m SkillMatch) Matched() bool {
	return m.Name != ""
}

// TaskMatch is the outcome of a Tier 2 trigger match. A zero TaskMatch
// (empty Name) means no trigger met the threshold.
type TaskMatch struct {
	Name     string
	Trigger  string
	Coverage float64
	Skills   []string
}

// Matched reports whether a task was found.
func (m TaskMatch) Matched() bool {
	return m.Name != ""
}
