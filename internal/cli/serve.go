package cli

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jigsaw/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on --addr (default from settings).

Endpoints:
  GET  /healthz
  POST /api/v1/validate   check a config and report grid statistics
  POST /api/v1/preview    render a puzzle, edge or adjacency preview
  POST /api/v1/pieces     compiled piece outlines as JSON
  POST /api/v1/export     per-piece SVG/PNG asset archive (zip)

Configs are sent as JSON bodies, or as multipart forms with a "config" part and
an optional "image" texture part.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.settings.Server.Addr
			}
			store, err := c.openCache(cmd.Context())
			if err != nil {
				return err
			}

			srv := server.New(store, c.settings, c.Logger)
			defer srv.Close()

			printSuccess("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))
			printDetail("Cache: %s", c.settings.Cache.Backend)
			if err := srv.ListenAndServe(cmd.Context(), addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			c.Logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from settings)")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
