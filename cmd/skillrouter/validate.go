package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/deps"
	"github.com/routelab/skillrouter/pkg/presenter"
	"github.com/routelab/skillrouter/pkg/skillfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the catalog and report cycles and missing references",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := presenter.New()

		path, err := catalogPath()
		if err != nil {
			return err
		}

		cat, err := catalog.Load(path)
		if err != nil {
			var validationErr *catalog.ValidationError
			if errors.As(err, &validationErr) {
				p.Error(errors.New("catalog validation failed"), path)
				for _, msg := range validationErr.Messages() {
					p.Warning(msg)
				}
				return err
			}
			p.Error(err, "failed to load catalog")
			return err
		}

		p.Success(fmt.Sprintf("catalog valid: %d skills, %d tasks, %d categories",
			len(cat.Skills), len(cat.Tasks), len(cat.Categories)))

		resolver := deps.NewResolver(cat)
		cycles := resolver.DetectCycles()
		for _, cycle := range cycles {
			p.Warning(fmt.Sprintf("dependency cycle: %s -> %s",
				strings.Join(cycle, " -> "), cycle[0]))
		}
		if len(cycles) == 0 {
			p.Info("no dependency cycles")
		}

		checkDocs, _ := cmd.Flags().GetBool("docs")
		if checkDocs {
			return validateDocs(p, cat)
		}
		return nil
	},
	SilenceUsage: true,
}

// validateDocs checks that every catalog skill has a parseable SKILL.md
// whose frontmatter name agrees with the catalog entry.
func validateDocs(p *presenter.Presenter, cat *catalog.Catalog) error {
	root, err := skillsRoot()
	if err != nil {
		return err
	}

	missing := 0
	for _, skill := range cat.OrderedSkills() {
		docPath := filepath.Join(root, skill.Path, contextgen.SkillFileName)
		doc, err := skillfile.Load(docPath)
		if err != nil {
			missing++
			p.Warning(fmt.Sprintf("%s: %v", skill.Name, err))
			continue
		}
		if doc.Name != skill.Name {
			p.Warning(fmt.Sprintf("%s: frontmatter name %q does not match catalog entry", skill.Name, doc.Name))
		}
	}

	if missing > 0 {
		return errors.Errorf("%d skill(s) missing documentation", missing)
	}
	p.Success("all skills have documentation")
	return nil
}

func init() {
	validateCmd.Flags().Bool("docs", false, "Also check each skill's SKILL.md frontmatter")
}
