package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartgeo/pkg/observability"
	"github.com/matzehuels/chartgeo/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz
  GET  /version
  GET  /v1/kinds
  POST /v1/layout/{kind}
  POST /v1/render/{kind}?format=svg|json|dot|flow
  POST /v1/hit/{kind}

The listen address defaults to [server] addr from the config file. With
[cache] redis_addr set, instances share one Redis cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			observability.NewLogHooks(c.Logger).Register()

			printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
			return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
