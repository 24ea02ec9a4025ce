package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/presenter"
	"github.com/routelab/skillrouter/pkg/router"
)

var routeCmd = &cobra.Command{
	Use:   "route [query]",
	Short: "Route a query and print the route result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := presenter.New()
		query := strings.Join(args, " ")

		path, err := catalogPath()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(path)
		if err != nil {
			p.Error(err, "failed to load catalog")
			return err
		}

		opts, err := routerOptions()
		if err != nil {
			return err
		}
		r := router.New(cat, opts...)

		ctx, cancel := context.WithTimeout(cmd.Context(), llmTimeout())
		defer cancel()
		result := r.Route(ctx, query)

		showContext, _ := cmd.Flags().GetBool("context")
		if showContext {
			root, err := skillsRoot()
			if err != nil {
				return err
			}
			assembler := contextgen.NewAssembler(contextgen.NewContentLoader(root))
			fmt.Fprintln(cmd.OutOrStdout(), assembler.Assemble(ctx, result, cat))
			return nil
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	routeCmd.Flags().Bool("context", false, "Print the assembled skill context instead of JSON")
}
