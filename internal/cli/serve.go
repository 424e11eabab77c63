package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/permute/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr        string
		maxItems    int
		maxElements int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve enumerations over HTTP",
		Long: `Serve enumerations over HTTP as newline-delimited JSON.

Endpoints:
  GET /v1/{kind}?items=a,b,c&k=2&limit=10   stream items, one JSON array per line
  GET /v1/{kind}/count?items=a,b,c&k=2      exact number of items
  GET /healthz                              liveness

{kind} is permutations, combinations or arrangements (or an alias such as
perm, comb or kperm). The server stops gracefully on interrupt.`,
		Example: `  permute serve --addr :9000
  curl 'localhost:9000/v1/comb?items=a,b,c,d&k=2'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := server.Options{
				Addr:        c.Config.Server.Addr,
				MaxItems:    c.Config.Server.MaxItems,
				MaxElements: c.Config.Server.MaxElements,
				Logger:      c.Logger,
			}
			if cmd.Flags().Changed("addr") {
				opts.Addr = addr
			}
			if cmd.Flags().Changed("max-items") {
				opts.MaxItems = maxItems
			}
			if cmd.Flags().Changed("max-elements") {
				opts.MaxElements = maxElements
			}

			c.Logger.Debug("Server limits", "max_items", opts.MaxItems, "max_elements", opts.MaxElements)
			return server.New(opts).ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+DefaultConfig().Server.Addr+")")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "maximum items streamed per request (0 = no cap)")
	cmd.Flags().IntVar(&maxElements, "max-elements", 0, "maximum input elements per request (0 = no cap)")

	return cmd
}
