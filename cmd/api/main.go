// @title Pets API
// @version 1.0
// @description CRUD de mascotas con groups y traits resueltos por nombre.
// @BasePath /
package main

import (
	"os"

	"pets-api/internal/platform/config"
	"pets-api/internal/platform/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "pets-api",
		Short:        "API de mascotas (pets, groups y traits)",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "archivo de configuración (toml, yaml o json)")

	load := func() (config.Config, logger.Logger, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		log := logger.New(logger.Options{
			Level:  logger.ParseLevel(cfg.Log.Level),
			Format: logger.ParseFormat(cfg.Log.Format),
			App:    cfg.Log.App,
		})
		return cfg, log, nil
	}

	serve := newServeCmd(load)
	root.AddCommand(serve, newMigrateCmd(load), newHealthcheckCmd(load))

	// Sin subcomando => serve.
	root.RunE = serve.RunE
	return root
}

type loadFunc func() (config.Config, logger.Logger, error)
