package cli

import (
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Manage the database schema.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back the latest migration
  reset   - Roll back every migration
  status  - Show applied and pending migrations
  version - Print the current schema version`,
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, cleanup, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()
			return db.Migrate(cmd.Context())
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, cleanup, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()
			return db.MigrateDown(cmd.Context())
		},
	}

	migrateResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Roll back every migration, dropping all tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, cleanup, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()
			return db.Reset(cmd.Context())
		},
	}

	migrateStatusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, cleanup, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()

			states, err := db.MigrationStatus(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			printf(w, "VERSION\tSTATE\tFILE\n")
			for _, s := range states {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				printf(w, "%d\t%s\t%s\n", s.Version, state, s.Path)
			}
			return w.Flush()
		},
	}

	migrateVersionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, cleanup, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()

			version, err := db.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%d\n", version)
			return nil
		},
	}

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateResetCmd, migrateStatusCmd, migrateVersionCmd)
	return migrateCmd
}
