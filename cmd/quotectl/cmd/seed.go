package cmd

import (
	"fmt"

	"quote-service/internal/config"
	"quote-service/internal/database/postgres"
	"quote-service/internal/repository"
	"quote-service/internal/services"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample companies and accounts into Postgres",
		Long: `Creates three sample companies with their login accounts and one admin account.
Every account uses the password "` + services.SamplePassword + `". Existing records are kept.
Connection settings come from the POSTGRES_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := services.SeedSampleData(cmd.Context(),
				repository.NewCompanyRepository(db),
				repository.NewUserRepository(db))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d companies and %d users\n", result.Companies, result.Users)
			return nil
		},
	}
}
