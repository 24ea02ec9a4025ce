package catalog

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Validate checks cross-reference closure over the whole catalog and
// returns every unresolved reference. It never stops at the first
// offender. A nil return means the catalog is internally consistent.
func Validate(cat *Catalog) *multierror.Error {
	var issues *multierror.Error

	for _, name := range cat.SkillOrder {
		skill := cat.Skills[name]
		for _, dep := range skill.DependsOn {
			if _, ok := cat.Skills[dep]; !ok {
				issues = multierror.Append(issues,
					errors.Errorf("skill '%s' depends on unknown skill '%s'", name, dep))
			}
		}
	}

	for _, name := range cat.TaskOrder {
		task := cat.Tasks[name]
		for _, ref := range task.Skills {
			if _, ok := cat.Skills[ref]; !ok {
				issues = multierror.Append(issues,
					errors.Errorf("task '%s' references unknown skill '%s'", name, ref))
			}
		}
	}

	for _, name := range cat.CategoryOrder {
		category := cat.Categories[name]
		for _, ref := range category.Tasks {
			if _, ok := cat.Tasks[ref]; !ok {
				issues = multierror.Append(issues,
					errors.Errorf("category '%s' references unknown task '%s'", name, ref))
			}
		}
		for _, ref := range category.Skills {
			if _, ok := cat.Skills[ref]; !ok {
				issues = multierror.Append(issues,
					errors.Errorf("category '%s' references unknown skill '%s'", name, ref))
			}
		}
	}

	return issues
}
