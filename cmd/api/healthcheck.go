package main

import (
	"context"
	"net"
	"strings"
	"time"

	"pets-api/internal/platform/httpclient"
	"pets-api/internal/platform/logger"

	"github.com/spf13/cobra"
)

func newHealthcheckCmd(load loadFunc) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Consulta GET /health del servidor (exit code != 0 si falla)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := load()
			if err != nil {
				return err
			}
			defer syncLogger(log)

			if baseURL == "" {
				baseURL = localURL(cfg.HTTP.Addr)
			}

			c, err := httpclient.New(baseURL, timeout)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := c.Health(ctx, "/health"); err != nil {
				log.Error("healthcheck failed", map[string]any{"url": baseURL, "error": err})
				return err
			}
			log.Info("healthcheck ok", map[string]any{"url": baseURL})
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "URL base del servidor (default: derivada de http.addr)")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "timeout del request")
	return cmd
}

// localURL arma http://host:port a partir de http.addr; host vacío => localhost.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(strings.TrimSpace(addr))
	if err != nil {
		return "http://localhost:8080"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func syncLogger(log logger.Logger) {
	if s, ok := log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}
