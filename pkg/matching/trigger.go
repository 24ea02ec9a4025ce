package matching

import (
	"github.com/routelab/skillrouter/pkg/catalog"
)

// DefaultThreshold is the minimum fraction of a trigger's tokens that must
// appear in the query for the trigger to match.
const DefaultThreshold = 0.6

// TriggerMatcher scores the query against every task trigger by coverage:
// the fraction of the trigger's tokens present in the query. Coverage of
// the trigger (not Jaccard) means extra user verbiage never penalizes a
// short, fully-covered trigger.
type TriggerMatcher struct {
	threshold float64
}

// NewTriggerMatcher creates a matcher with the given threshold; zero or
// negative falls back to DefaultThreshold.
func NewTriggerMatcher(threshold float64) *TriggerMatcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &TriggerMatcher{threshold: threshold}
}

// Coverage computes |query ∩ trigger| / |trigger|, or 0 for an empty
// trigger set.
func Coverage(queryTokens, triggerTokens map[string]bool) float64 {
	if len(triggerTokens) == 0 || len(queryTokens) == 0 {
		return 0
	}
	overlap := 0
	for token := range triggerTokens {
		if queryTokens[token] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(triggerTokens))
}

// Match returns the globally best (task, trigger) pair whose coverage
// meets the threshold. Equal scores keep the first-encountered pair; tasks
// iterate in catalog document order, making the tie-break deterministic.
func (m *TriggerMatcher) Match(query string, cat *catalog.Catalog) TaskMatch {
	if query == "" || len(cat.Tasks) == 0 {
		return TaskMatch{}
	}

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return TaskMatch{}
	}

	var best TaskMatch
	for _, task := range cat.OrderedTasks() {
		for _, trigger := range task.Triggers {
			triggerTokens := Tokenize(trigger)
			if len(triggerTokens) == 0 {
				continue
			}

			coverage := Coverage(queryTokens, triggerTokens)
			if coverage < m.threshold {
				continue
			}
			if coverage > best.Coverage {
				best = TaskMatch{
					Name:     task.Name,
					Trigger:  trigger,
					Coverage: coverage,
					Skills:   append([]string(nil), task.Skills...),
				}
			}
		}
	}

	return best
}
