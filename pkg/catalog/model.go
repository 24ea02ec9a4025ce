// Package catalog loads and validates the skill catalog: a cross-referenced
// graph of skills, tasks, and categories parsed from a YAML file. A catalog
// that fails validation is rejected in full; callers never observe a partial
// catalog.
package catalog

// Skill is a named, documentation-backed capability unit. Path is the
// location of its documentation directory relative to the skills root.
type Skill struct {
	Name        string   `yaml:"-"`
	Description string   `yaml:"description"`
	Path        string   `yaml:"path"`
	DependsOn   []string `yaml:"depends_on"`
}

// Task is a user-intent-labeled bundle of skills activated by trigger
// phrases.
type Task struct {
	Name        string   `yaml:"-"`
	Description string   `yaml:"description"`
	Triggers    []string `yaml:"triggers"`
	Skills      []string `yaml:"skills"`
}

// Category is a documentation-only grouping of tasks and skills. Categories
// never participate in routing decisions.
type Category struct {
	Name        string   `yaml:"-"`
	Description string   `yaml:"description"`
	Tasks       []string `yaml:"tasks"`
	Skills      []string `yaml:"skills"`
}

// Catalog is the validated in-memory graph. The *Order slices preserve the
// document order of each section so that matching and resolution stay
// deterministic across runs.
type Catalog struct {
	Skills     map[string]*Skill
	Tasks      map[string]*Task
	Categories map[string]*Category

	SkillOrder    []string
	TaskOrder     []string
	CategoryOrder []string
}

// SkillNames returns skill names in document order.
func (c *Catalog) SkillNames() []string {
	names := make([]string, len(c.SkillOrder))
	copy(names, c.SkillOrder)
	return names
}

// TaskNames returns task names in document order.
func (c *Catalog) TaskNames() []string {
	names := make([]string, len(c.TaskOrder))
	copy(names, c.TaskOrder)
	return names
}

// OrderedTasks returns tasks in document order.
func (c *Catalog) OrderedTasks() []*Task {
	tasks := make([]*Task, 0, len(c.TaskOrder))
	for _, name := range c.TaskOrder {
		tasks = append(tasks, c.Tasks[name])
	}
	return tasks
}

// OrderedSkills returns skills in document order.
func (c *Catalog) OrderedSkills() []*Skill {
	skills := make([]*Skill, 0, len(c.SkillOrder))
	for _, name := range c.SkillOrder {
		skills = append(skills, c.Skills[name])
	}
	return skills
}
