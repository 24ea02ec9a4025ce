// Package deps resolves skill dependency graphs into execution order.
// Resolution collects the transitive closure of a request set, orders it
// with Kahn's algorithm, and degrades rather than fails: missing
// dependencies and cycles surface as warnings on the result, never as
// errors.
package deps

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/routelab/skillrouter/pkg/catalog"
)

// WarningKind discriminates resolution warnings.
type WarningKind string

const (
	// WarningMissingDependency marks a dependency name absent from the
	// catalog. The referring skill is still included in the result.
	WarningMissingDependency WarningKind = "missing_dependency"
	// WarningCycle marks a dependency cycle. The participating skills are
	// appended to the execution order rather than dropped.
	WarningCycle WarningKind = "cycle"
)

// Warning describes a non-fatal resolution problem.
type Warning struct {
	Kind    WarningKind
	Skill   string   // referring skill for missing_dependency
	Missing string   // absent dependency name for missing_dependency
	Cycle   []string // participating skills for cycle
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningMissingDependency:
		return fmt.Sprintf("skill '%s' depends on missing skill '%s'", w.Skill, w.Missing)
	case WarningCycle:
		return fmt.Sprintf("circular dependency detected: %s -> %s",
			strings.Join(w.Cycle, " -> "), w.Cycle[0])
	default:
		return string(w.Kind)
	}
}

// Result is the outcome of a resolution: a topological ordering of the
// transitive closure of the request set, a cycle flag, and any warnings.
type Result struct {
	ExecutionOrder []string
	HasCycle       bool
	Warnings       []Warning
}

// Resolver resolves dependencies against a single catalog snapshot.
type Resolver struct {
	skills map[string]*catalog.Skill
	order  []string
}

// NewResolver creates a resolver over the given catalog snapshot.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{skills: cat.Skills, order: cat.SkillOrder}
}

// Collect returns the transitive dependency closure of a single skill,
// including the skill itself, in deterministic discovery order. Unknown
// names yield an empty closure.
func (r *Resolver) Collect(name string) []string {
	var nodes []string
	seen := map[string]bool{}
	r.collect(name, seen, &nodes, nil)
	return nodes
}

// collect walks depends_on depth-first, memoized by seen. Missing
// dependencies are recorded and skipped.
func (r *Resolver) collect(name string, seen map[string]bool, nodes *[]string, warnings *[]Warning) {
	if seen[name] {
		return
	}
	skill, ok := r.skills[name]
	if !ok {
		return
	}
	seen[name] = true
	*nodes = append(*nodes, name)

	for _, dep := range skill.DependsOn {
		if _, ok := r.skills[dep]; !ok {
			if warnings != nil {
				*warnings = append(*warnings, Warning{
					Kind:    WarningMissingDependency,
					Skill:   name,
					Missing: dep,
				})
			}
			continue
		}
		r.collect(dep, seen, nodes, warnings)
	}
}

// Resolve resolves a single skill. The requested skill must exist in the
// catalog snapshot.
func (r *Resolver) Resolve(name string) (Result, error) {
	if _, ok := r.skills[name]; !ok {
		return Result{}, errors.Errorf("skill '%s' not found in catalog", name)
	}
	return r.ResolveMulti([]string{name}), nil
}

// ResolveMulti resolves the union closure of the named skills. Names
// absent from the catalog are ignored; each collected name appears at
// most once in the execution order. An empty request yields an empty
// result with no warnings.
func (r *Resolver) ResolveMulti(names []string) Result {
	var nodes []string
	var warnings []Warning
	seen := map[string]bool{}
	for _, name := range names {
		r.collect(name, seen, &nodes, &warnings)
	}

	if len(nodes) == 0 {
		return Result{Warnings: warnings}
	}

	order, remaining := r.sort(nodes)
	result := Result{ExecutionOrder: order, Warnings: warnings}

	if len(remaining) > 0 {
		result.HasCycle = true
		result.ExecutionOrder = append(result.ExecutionOrder, remaining...)
		if cycles := r.findCycles(nodes); len(cycles) > 0 {
			result.Warnings = append(result.Warnings, Warning{
				Kind:  WarningCycle,
				Cycle: cycles[0],
			})
		}
	}

	return result
}

// sort runs Kahn's algorithm over the closure subgraph. Ties among
// in-degree-zero nodes break by closure discovery order. Nodes left after
// the main loop participate in a cycle or depend on one, and are returned
// separately, in discovery order.
func (r *Resolver) sort(nodes []string) (order []string, remaining []string) {
	inDegree := make(map[string]int, len(nodes))
	dependents := make(map[string][]string, len(nodes))
	inClosure := make(map[string]bool, len(nodes))
	for _, name := range nodes {
		inClosure[name] = true
		inDegree[name] = 0
	}

	for _, name := range nodes {
		for _, dep := range r.skills[name].DependsOn {
			if !inClosure[dep] {
				continue
			}
			dependents[dep] = append(dependents[dep], name)
			inDegree[name]++
		}
	}

	var queue []string
	for _, name := range nodes {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	placed := make(map[string]bool, len(nodes))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		order = append(order, name)
		placed[name] = true

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	for _, name := range nodes {
		if !placed[name] {
			remaining = append(remaining, name)
		}
	}
	return order, remaining
}
