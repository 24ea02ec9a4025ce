package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/routelab/skillrouter/pkg/catalog"
	"github.com/routelab/skillrouter/pkg/contextgen"
	"github.com/routelab/skillrouter/pkg/logger"
	"github.com/routelab/skillrouter/pkg/presenter"
	"github.com/routelab/skillrouter/pkg/router"
	"github.com/routelab/skillrouter/pkg/server"
	"github.com/routelab/skillrouter/pkg/telemetry"
	"github.com/routelab/skillrouter/pkg/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the routing API over HTTP",
	Long: `Starts the HTTP routing service. The catalog file is watched for
changes and reloaded into an atomically swapped snapshot, so edits take
effect without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := presenter.New()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Config{
			Enabled:        viper.GetBool("tracing.enabled"),
			ServiceName:    "skillrouter",
			ServiceVersion: version.Get().Version,
			SamplerType:    viper.GetString("tracing.sampler"),
			SamplerRatio:   viper.GetFloat64("tracing.ratio"),
		})
		if err != nil {
			return err
		}
		defer shutdownTracer(context.Background())

		path, err := catalogPath()
		if err != nil {
			return err
		}
		cat, err := catalog.Load(path)
		if err != nil {
			p.Error(err, "failed to load catalog")
			return err
		}
		store := catalog.NewStore(cat)

		watcher, err := catalog.NewWatcher(path, store)
		if err != nil {
			logger.G(ctx).WithError(err).Warn("catalog watching disabled")
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
		}

		opts, err := routerOptions()
		if err != nil {
			return err
		}

		root, err := skillsRoot()
		if err != nil {
			return err
		}

		host, _ := cmd.Flags().GetString("host")
		port, _ := cmd.Flags().GetString("port")
		srv := server.New(store, router.NewWithSnapshots(store, opts...),
			contextgen.NewContentLoader(root), server.Config{
				Host:       host,
				Port:       port,
				LLMTimeout: llmTimeout(),
			})

		p.Success(fmt.Sprintf("routing API listening on http://%s:%s (%d skills)", host, port, len(cat.Skills)))

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("host", "localhost", "Host to bind")
	serveCmd.Flags().String("port", "8080", "Port to bind")
}
