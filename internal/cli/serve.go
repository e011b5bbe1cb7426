package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/userbooks/internal/entrypoint"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server on HOST:PORT.

Pending migrations are applied first unless MIGRATE_ON_START=false, and the
demo rows are inserted when SEED_ON_START=true. SIGINT or SIGTERM stops the
server, waiting SHUTDOWN_TIMEOUT_IN_SECONDS for in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *rootOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	return entrypoint.Run(cfg, opts.version)
}
