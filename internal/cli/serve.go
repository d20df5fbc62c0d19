package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/multiplex/internal/server"
	"github.com/matzehuels/multiplex/pkg/cache"
	"github.com/matzehuels/multiplex/pkg/observability"
	"github.com/matzehuels/multiplex/pkg/pipeline"
)

// redisPrefix namespaces server keys in a shared Redis.
const redisPrefix = appName + ":"

type serveOpts struct {
	addr     string
	redisURL string
	noCache  bool
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: server.DefaultAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendering over HTTP",
		Long: `Serve exposes POST /render and POST /text. Rendered artifacts are cached in
Redis when --redis or REDIS_URL is set, and in the local cache directory
otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.redisURL == "" {
				opts.redisURL = os.Getenv("REDIS_URL")
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (default $REDIS_URL)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{Addr: opts.addr, Runner: runner, Logger: c.Logger})
	printInfo("Listening on %s", opts.addr)
	return srv.ListenAndServe(ctx)
}

func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache || opts.redisURL == "" {
		return c.newCache(opts.noCache), nil
	}
	rc, err := cache.NewRedisCache(ctx, opts.redisURL)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache")
	return cache.NewScoped(rc, redisPrefix), nil
}
