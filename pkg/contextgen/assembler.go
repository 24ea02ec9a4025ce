package contextgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/logger"
	"github.com/routelab/skillrouter/pkg/router"
)

// Role annotates a skill section: PRIMARY skills were directly requested
// or taught by the matched task; everything else in the execution order is
// a DEPENDENCY.
type Role string

const (
	// RolePrimary marks a directly matched skill.
	RolePrimary Role = "PRIMARY"
	// RoleDependency marks a skill pulled in by dependency resolution.
	RoleDependency Role = "DEPENDENCY"
)

// Section is one skill's slot in the assembled block.
type Section struct {
	Name    string
	Role    Role
	Content string
	Warning string
}

// Assembler formats route results into <skill_context> blocks.
type Assembler struct {
	loader *ContentLoader
}

// NewAssembler creates an assembler using the given content loader.
func NewAssembler(loader *ContentLoader) *Assembler {
	return &Assembler{loader: loader}
}

// Assemble renders the block for a route result against a catalog
// snapshot. Error results produce the empty string; the caller writes
// nothing. An empty execution order produces the header alone. Sections
// appear in execution order, dependencies first; every primary skill is
// annotated PRIMARY even when another primary depends on it.
func (a *Assembler) Assemble(ctx context.Context, result router.Result, cat *catalog.Catalog) string {
	if result.Type == router.RouteError {
		return ""
	}

	var b strings.Builder
	b.WriteString("<skill_context>\n")
	fmt.Fprintf(&b, "Matched: %s '%s'\n", result.Type, result.Matched)

	if len(result.ExecutionOrder) == 0 {
		b.WriteString("Execution order: (none)\n\n</skill_context>")
		return b.String()
	}

	fmt.Fprintf(&b, "Execution order: %s\n\n", strings.Join(result.ExecutionOrder, " -> "))

	primary := make(map[string]bool, len(result.Skills))
	for _, name := range result.Skills {
		primary[name] = true
	}

	log := logger.G(ctx)
	for _, name := range result.ExecutionOrder {
		section := a.section(name, primary[name], cat)
		if section.Warning != "" {
			log.WithField("skill", name).Warn(section.Warning)
		}
		fmt.Fprintf(&b, "## %s [%s]\n%s\n\n---\n\n", section.Name, section.Role, section.Content)
	}

	b.WriteString("</skill_context>")
	return b.String()
}

func (a *Assembler) section(name string, isPrimary bool, cat *catalog.Catalog) Section {
	role := RoleDependency
	if isPrimary {
		role = RolePrimary
	}

	skill, ok := cat.Skills[name]
	if !ok {
		return Section{
			Name:    name,
			Role:    role,
			Content: fmt.Sprintf("(Skill '%s' not found in catalog)", name),
			Warning: fmt.Sprintf("skill '%s' is in the execution order but not in the catalog", name),
		}
	}

	content, warning := a.loader.Load(name, skill.Path)
	return Section{Name: name, Role: role, Content: content, Warning: warning}
}
