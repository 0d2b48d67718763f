package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boardtree/internal/server"
	"github.com/matzehuels/boardtree/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve placement and rendering over HTTP",
		Long: `Serve starts an HTTP server with the endpoints:

  GET  /healthz
  POST /v1/place   design body (JSON, or TOML with Content-Type: application/toml)
  POST /v1/render  same body, ?format=dot|svg&detailed=true
  GET  /v1/stats   request, placement and cache counters

The listen address defaults to server.addr from the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config().GetString(cfgKeyServerAddr)
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			backend := c.config().GetString(cfgKeyCacheBackend)
			if noCache {
				backend = "none"
			}
			logger := loggerFromContext(ctx)
			counters := observability.NewCounters()
			hooks := observability.Fanout{observability.NewLogHooks(logger), counters}
			observability.SetPlacementHooks(hooks)
			observability.SetCacheHooks(hooks)

			printInfo("Listening on %s", StyleHighlight.Render(addr))
			printKeyValue("cache", backend)
			return server.New(runner, logger).WithStats(counters).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the placement cache")

	return cmd
}
