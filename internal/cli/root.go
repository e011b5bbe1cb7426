// Package cli defines the userbooks command line: the HTTP server plus the
// schema and seed maintenance commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrlokans/userbooks/internal/config"
	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/logging"
)

type rootOptions struct {
	envFile string
	version string
}

// NewRootCommand builds the command tree. Running it without a subcommand
// starts the server.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	rootCmd := &cobra.Command{
		Use:   "userbooks",
		Short: "Users and authorship CRUD service",
		Long: `userbooks serves a small REST API over a SQLite database of users,
books and the authorship links between them.

Every endpoint except /, /health and /ping requires the api-key header
to match API_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "Dotenv file read before the environment")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfigFromFile(o.envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openDatabase loads configuration and opens the database without touching
// the schema. The returned cleanup closes the database and the log file.
func (o *rootOptions) openDatabase() (*database.Database, *logrus.Logger, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		logCloser.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("error closing database")
		}
		logCloser.Close()
	}
	return db, logger, cleanup, nil
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
