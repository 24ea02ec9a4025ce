package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/presenter"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List catalog skills and their documentation status",
	RunE: func(cmd *cobra.Command, args []string) error {
		p := presenter.New()

		path, err := catalogPath()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(path)
		if err != nil {
			p.Error(err, "failed to load catalog")
			return err
		}

		root, err := skillsRoot()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tDESCRIPTION\tPATH\tDOCS")
		for _, skill := range cat.OrderedSkills() {
			docs := "yes"
			if _, err := os.Stat(filepath.Join(root, skill.Path, contextgen.SkillFileName)); err != nil {
				docs = "missing"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", skill.Name, skill.Description, skill.Path, docs)
		}
		return w.Flush()
	},
	SilenceUsage: true,
}
