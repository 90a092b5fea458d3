package main

import (
	"pets-api/internal/adapters/storage/sqlstore"
	"pets-api/internal/platform/config"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newMigrateCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea las tablas del storage SQL configurado",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer syncLogger(log)

			if cfg.Storage.Driver == config.DriverMemory {
				return errors.New("migrate requires storage.driver postgres or sqlite")
			}

			d, err := sqlstore.ParseDialect(string(cfg.Storage.Driver))
			if err != nil {
				return err
			}
			db, err := sqlstore.Open(d, cfg.Storage.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return sqlstore.Migrate(cmd.Context(), db, d, log)
		},
	}
}
