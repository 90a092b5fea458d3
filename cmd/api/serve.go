package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pets-api/internal/router"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer syncLogger(log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := router.OpenDB(ctx, cfg.Storage, log)
			if err != nil {
				log.Error("storage unavailable", map[string]any{"driver": string(cfg.Storage.Driver), "error": err})
				return err
			}
			if db != nil {
				defer db.Close()
			}

			srv := &http.Server{
				Addr:         cfg.HTTP.Addr,
				Handler:      router.NewRouter(router.Options{Config: cfg, Logger: log, DB: db}),
				ReadTimeout:  cfg.HTTP.ReadTimeout,
				WriteTimeout: cfg.HTTP.WriteTimeout,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Info("starting server", map[string]any{
					"addr":    cfg.HTTP.Addr,
					"storage": string(cfg.Storage.Driver),
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return errors.Wrap(err, "server error")
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info("shutting down", nil)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
				defer cancel()
				return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
			})

			if err := g.Wait(); err != nil {
				log.Error("server stopped", map[string]any{"error": err})
				return err
			}
			return nil
		},
	}
}
