package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/hookio"
	"github.com/routelab/skillrouter/pkg/logger"
	"github.com/routelab/skillrouter/pkg/router"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Run as a pre-prompt hook: read PROMPT or stdin, print skill context",
	Long: `Reads the user query from the PROMPT environment variable, falling
back to stdin, routes it, and writes the assembled <skill_context> block
to stdout. An empty query or an unroutable one produces no output and
exits 0. A catalog loading or configuration failure exits non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout is reserved for the context block.
		logger.SetLogOutput(os.Stderr)

		path, err := catalogPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "skillrouter hook: %v\n", err)
			return err
		}
		cat, err := catalog.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skillrouter hook: %v\n", err)
			return err
		}

		opts, err := routerOptions()
		if err != nil {
			fmt.Fprintf(os.Stderr, "skillrouter hook: %v\n", err)
			return err
		}

		root, err := skillsRoot()
		if err != nil {
			return err
		}

		hook := hookio.NewHook(
			cat,
			router.New(cat, opts...),
			contextgen.NewAssembler(contextgen.NewContentLoader(root)),
			hookio.NewQuerySource(),
			cmd.OutOrStdout(),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), llmTimeout())
		defer cancel()
		return hook.Run(ctx)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}
