package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routelab/skillrouter/pkg/catalog"
)

func tasksCatalog(tasks ...*catalog.Task) *catalog.Catalog {
	cat := &catalog.Catalog{
		Skills: map[string]*catalog.Skill{},
		Tasks:  map[string]*catalog.Task{},
	}
	for _, task := range tasks {
		cat.Tasks[task.Name] = task
		cat.TaskOrder = append(cat.TaskOrder, task.Name)
	}
	return cat
}

func staticWebsiteTask() *catalog.Task {
	return &catalog.Task{
		Name:        "static-website",
		Description: "Build and host a static website",
		Triggers:    []string{"build a static website", "create a static site"},
		Skills:      []string{"nextjs-standards", "aws-static-hosting", "github-actions-cicd"},
	}
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		trigger string
		want    float64
	}{
		{"full coverage", "build a static website", "build a static website", 1.0},
		{"extra verbiage does not penalize", "I want to build a static website for my business", "build a static website", 1.0},
		{"partial", "build static website", "build a static website", 0.75},
		{"single word", "website", "build a static website", 0.25},
		{"only article overlap", "bake a cake", "build a static website", 0.25},
		{"empty trigger", "anything", "", 0},
		{"empty query", "", "build a static website", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Coverage(Tokenize(tt.query), Tokenize(tt.trigger)), 1e-9)
		})
	}
}

func TestTriggerMatch(t *testing.T) {
	cat := tasksCatalog(staticWebsiteTask())
	m := NewTriggerMatcher(0)

	match := m.Match(Normalize("build a static website"), cat)
	assert.True(t, match.Matched())
	assert.Equal(t, "static-website", match.Name)
	assert.Equal(t, "build a static website", match.Trigger)
	assert.InDelta(t, 1.0, match.Coverage, 1e-9)
	assert.Equal(t, []string{"nextjs-standards", "aws-static-hosting", "github-actions-cicd"}, match.Skills)
}

func TestTriggerMatchAboveThreshold(t *testing.T) {
	cat := tasksCatalog(staticWebsiteTask())
	m := NewTriggerMatcher(0)

	// Coverage 3/4 = 0.75 still matches.
	match := m.Match(Normalize("build static website"), cat)
	assert.True(t, match.Matched())
	assert.Equal(t, "static-website", match.Name)
	assert.InDelta(t, 0.75, match.Coverage, 1e-9)
}

func TestTriggerThresholdSemantics(t *testing.T) {
	// A pair with coverage below 0.60 is never selected.
	cat := tasksCatalog(staticWebsiteTask())
	m := NewTriggerMatcher(0)

	match := m.Match(Normalize("website"), cat) // coverage 1/4
	assert.False(t, match.Matched())

	match = m.Match(Normalize("build website"), cat) // coverage 2/4
	assert.False(t, match.Matched())
}

func TestTriggerBestScoreWins(t *testing.T) {
	weak := &catalog.Task{
		Name:     "weak-match",
		Triggers: []string{"build something for the static modern responsive website"},
		Skills:   []string{"a"},
	}
	cat := tasksCatalog(weak, staticWebsiteTask())
	m := NewTriggerMatcher(0)

	match := m.Match(Normalize("build a static website"), cat)
	assert.Equal(t, "static-website", match.Name)
}

func TestTriggerTieKeepsFirstEncountered(t *testing.T) {
	first := &catalog.Task{
		Name:     "first-task",
		Triggers: []string{"deploy the service"},
		Skills:   []string{"a"},
	}
	second := &catalog.Task{
		Name:     "second-task",
		Triggers: []string{"deploy the service"},
		Skills:   []string{"b"},
	}
	cat := tasksCatalog(first, second)
	m := NewTriggerMatcher(0)

	match := m.Match(Normalize("deploy the service"), cat)
	assert.Equal(t, "first-task", match.Name)
}

func TestTriggerNoTasks(t *testing.T) {
	m := NewTriggerMatcher(0)
	assert.False(t, m.Match("anything", tasksCatalog()).Matched())
	assert.False(t, m.Match("", tasksCatalog(staticWebsiteTask())).Matched())
}

func TestTriggerSkillsCopied(t *testing.T) {
	task := staticWebsiteTask()
	cat := tasksCatalog(task)
	m := NewTriggerMatcher(0)

	match := m.Match(Normalize("build a static website"), cat)
	match.Skills[0] = "mutated"
	assert.Equal(t, "nextjs-standards", task.Skills[0])
}
