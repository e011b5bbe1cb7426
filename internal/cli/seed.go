package cli

import (
	"github.com/spf13/cobra"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo users and books",
		Long: `Insert ten demo users and five demo books. Rows whose id already exists
are left alone, so running seed twice changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, cleanup, err := opts.openDatabase()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx := cmd.Context()
			if migrate {
				if err := db.Migrate(ctx); err != nil {
					return err
				}
			}

			result, err := db.Seed(ctx)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "Inserted %d users and %d books\n", result.Users, result.Books)
			return nil
		},
	}

	seedCmd.Flags().BoolVar(&migrate, "migrate", true, "Apply pending migrations before seeding")
	return seedCmd
}
