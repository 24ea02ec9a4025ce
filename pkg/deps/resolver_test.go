package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/skillrouter/pkg/catalog"
)

// buildCatalog constructs a catalog from (name, deps) pairs without going
// through YAML.
func buildCatalog(entries ...[2]any) *catalog.Catalog {
	cat := &catalog.Catalog{
		Skills: map[string]*catalog.Skill{},
		Tasks:  map[string]*catalog.Task{},
	}
	for _, entry := range entries {
		name := entry[0].(string)
		deps := entry[1].([]string)
		cat.Skills[name] = &catalog.Skill{Name: name, Path: name, DependsOn: deps}
		cat.SkillOrder = append(cat.SkillOrder, name)
	}
	return cat
}

// indexOf returns the position of name in order, or -1.
func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

// assertTopological checks that every in-catalog dependency of every skill
// in the order appears strictly before its dependent.
func assertTopological(t *testing.T, cat *catalog.Catalog, order []string) {
	t.Helper()
	for _, name := range order {
		for _, dep := range cat.Skills[name].DependsOn {
			if _, ok := cat.Skills[dep]; !ok {
				continue
			}
			assert.Less(t, indexOf(order, dep), indexOf(order, name),
				"dependency %s must precede %s in %v", dep, name, order)
		}
	}
}

func TestResolveSingleSkillNoDeps(t *testing.T) {
	cat := buildCatalog([2]any{"standalone", []string{}})
	result, err := NewResolver(cat).Resolve("standalone")
	require.NoError(t, err)

	assert.Equal(t, []string{"standalone"}, result.ExecutionOrder)
	assert.False(t, result.HasCycle)
	assert.Empty(t, result.Warnings)
}

func TestResolveTransitiveChain(t *testing.T) {
	cat := buildCatalog(
		[2]any{"terraform-base", []string{}},
		[2]any{"ecr-setup", []string{"terraform-base"}},
		[2]any{"aws-ecs-deployment", []string{"terraform-base", "ecr-setup"}},
	)
	result, err := NewResolver(cat).Resolve("aws-ecs-deployment")
	require.NoError(t, err)

	assert.Equal(t, []string{"terraform-base", "ecr-setup", "aws-ecs-deployment"}, result.ExecutionOrder)
	assert.False(t, result.HasCycle)
	assertTopological(t, cat, result.ExecutionOrder)
}

func TestResolveUnknownSkill(t *testing.T) {
	cat := buildCatalog([2]any{"known", []string{}})
	_, err := NewResolver(cat).Resolve("unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestResolveMissingDependencyWarnsAndKeepsReferrer(t *testing.T) {
	cat := buildCatalog([2]any{"has-ghost-dep", []string{"ghost"}})
	result, err := NewResolver(cat).Resolve("has-ghost-dep")
	require.NoError(t, err)

	assert.Equal(t, []string{"has-ghost-dep"}, result.ExecutionOrder)
	require.Len(t, result.Warnings, 1)
	warning := result.Warnings[0]
	assert.Equal(t, WarningMissingDependency, warning.Kind)
	assert.Equal(t, "has-ghost-dep", warning.Skill)
	assert.Equal(t, "ghost", warning.Missing)
	assert.Contains(t, warning.String(), "ghost")
}

func TestResolveMultiDeduplicatesSharedDeps(t *testing.T) {
	cat := buildCatalog(
		[2]any{"base", []string{}},
		[2]any{"left", []string{"base"}},
		[2]any{"right", []string{"base"}},
	)
	result := NewResolver(cat).ResolveMulti([]string{"left", "right"})

	// Each name appears at most once.
	seen := map[string]int{}
	for _, name := range result.ExecutionOrder {
		seen[name]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "%s appears %d times", name, count)
	}

	// The result covers exactly the transitive closure.
	assert.ElementsMatch(t, []string{"base", "left", "right"}, result.ExecutionOrder)
	assertTopological(t, cat, result.ExecutionOrder)
}

func TestResolveMultiEmptyInput(t *testing.T) {
	cat := buildCatalog([2]any{"anything", []string{}})
	result := NewResolver(cat).ResolveMulti(nil)

	assert.Empty(t, result.ExecutionOrder)
	assert.False(t, result.HasCycle)
	assert.Empty(t, result.Warnings)
}

func TestResolveMultiIgnoresUnknownNames(t *testing.T) {
	cat := buildCatalog([2]any{"real", []string{}})
	result := NewResolver(cat).ResolveMulti([]string{"real", "imaginary"})
	assert.Equal(t, []string{"real"}, result.ExecutionOrder)
}

func TestResolveCycleTolerance(t *testing.T) {
	cat := buildCatalog(
		[2]any{"skill-a", []string{"skill-b"}},
		[2]any{"skill-b", []string{"skill-a"}},
	)
	result, err := NewResolver(cat).Resolve("skill-a")
	require.NoError(t, err)

	// Both cycle members are present; resolution never raises.
	assert.ElementsMatch(t, []string{"skill-a", "skill-b"}, result.ExecutionOrder)
	assert.True(t, result.HasCycle)

	var cycleWarnings []Warning
	for _, w := range result.Warnings {
		if w.Kind == WarningCycle {
			cycleWarnings = append(cycleWarnings, w)
		}
	}
	require.NotEmpty(t, cycleWarnings)
	assert.Contains(t, cycleWarnings[0].String(), "circular dependency")
}

func TestResolveCycleWithTail(t *testing.T) {
	// An acyclic dependency of a cycle member still resolves first; cycle
	// members are appended after the acyclic prefix.
	cat := buildCatalog(
		[2]any{"clean", []string{}},
		[2]any{"loop-x", []string{"loop-y", "clean"}},
		[2]any{"loop-y", []string{"loop-x"}},
	)
	result, err := NewResolver(cat).Resolve("loop-x")
	require.NoError(t, err)

	assert.True(t, result.HasCycle)
	assert.ElementsMatch(t, []string{"clean", "loop-x", "loop-y"}, result.ExecutionOrder)
	assert.Equal(t, "clean", result.ExecutionOrder[0])
}

func TestResolveDeterministicTieBreak(t *testing.T) {
	cat := buildCatalog(
		[2]any{"root", []string{"alpha", "beta", "gamma"}},
		[2]any{"alpha", []string{}},
		[2]any{"beta", []string{}},
		[2]any{"gamma", []string{}},
	)
	first, err := NewResolver(cat).Resolve("root")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := NewResolver(cat).Resolve("root")
		require.NoError(t, err)
		assert.Equal(t, first.ExecutionOrder, again.ExecutionOrder)
	}
}

func TestCollect(t *testing.T) {
	cat := buildCatalog(
		[2]any{"a", []string{"b"}},
		[2]any{"b", []string{"c"}},
		[2]any{"c", []string{}},
		[2]any{"unrelated", []string{}},
	)
	collected := NewResolver(cat).Collect("a")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, collected)

	assert.Empty(t, NewResolver(cat).Collect("missing"))
}

func TestDetectCycles(t *testing.T) {
	cat := buildCatalog(
		[2]any{"safe", []string{}},
		[2]any{"ring-1", []string{"ring-2"}},
		[2]any{"ring-2", []string{"ring-3"}},
		[2]any{"ring-3", []string{"ring-1"}},
	)
	cycles := NewResolver(cat).DetectCycles()
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"ring-1", "ring-2", "ring-3"}, cycles[0])
}

func TestDetectCyclesNone(t *testing.T) {
	cat := buildCatalog(
		[2]any{"a", []string{"b"}},
		[2]any{"b", []string{}},
	)
	assert.Empty(t, NewResolver(cat).DetectCycles())
}

func TestDetectCyclesSelfLoop(t *testing.T) {
	cat := buildCatalog([2]any{"narcissist", []string{"narcissist"}})
	cycles := NewResolver(cat).DetectCycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"narcissist"}, cycles[0])
}
