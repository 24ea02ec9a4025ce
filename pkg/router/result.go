package router

// RouteType discriminates how a query was matched.
type RouteType string

const (
	// RouteSkill is a Tier 1 direct skill match.
	RouteSkill RouteType = "skill"
	// RouteTask is a Tier 2 trigger match.
	RouteTask RouteType = "task"
	// RouteDiscovery is a Tier 3 LLM match (skill or task).
	RouteDiscovery RouteType = "discovery"
	// RouteError means no tier produced a usable match.
	RouteError RouteType = "error"
)

// Result is the outcome of routing a query. Skills holds the primary
// skills (directly requested or taught by the matched task);
// ExecutionOrder is the dependency-resolved load sequence and may be
// longer than Skills.
type Result struct {
	Type           RouteType `json:"route_type"`
	Matched        string    `json:"matched"`
	Skills         []string  `json:"skills"`
	ExecutionOrder []string  `json:"execution_order"`
	Tier           int       `json:"tier"`
	Confidence     float64   `json:"confidence"`

	// MatchedTrigger is the winning trigger phrase on Tier 2 results.
	MatchedTrigger string `json:"matched_trigger,omitempty"`
}

// IsMatch reports whether the result represents a successful route.
func (r Result) IsMatch() bool {
	return r.Type != RouteError
}

// ErrorResult is the canonical no-match result: empty names, tier 0,
// confidence 0.
func ErrorResult() Result {
	return Result{
		Type:           RouteError,
		Matched:        "",
		Skills:         []string{},
		ExecutionOrder: []string{},
		Tier:           0,
		Confidence:     0,
	}
}
