// Package app wires configuration, telemetry, the resolver, and the HTTP
// server into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abczzz13/ipapi/clientip"
	clientipprom "github.com/abczzz13/ipapi/clientip/prometheus"
	"github.com/abczzz13/ipapi/internal/config"
	"github.com/abczzz13/ipapi/internal/httpserver"
	"github.com/abczzz13/ipapi/internal/telemetry"
	"github.com/abczzz13/ipapi/internal/version"
)

// Run is the main application entry point. It builds the resolver and HTTP
// server from config and serves until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := telemetry.NewLogger(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting ipapi",
		"version", version.Version,
		"listen", cfg.ListenAddr(),
		"trusted_proxies", cfg.TrustedProxies,
		"proxy_layers", cfg.ProxyLayers,
	)

	metricsReg := telemetry.NewMetricsRegistry()

	resolverMetrics, err := clientipprom.NewWithRegisterer(metricsReg)
	if err != nil {
		return fmt.Errorf("registering resolver metrics: %w", err)
	}

	resolver, err := clientip.New(
		clientip.TrustedProxies(cfg.TrustedProxies...),
		clientip.WithLogger(logger),
		clientip.WithMetrics(resolverMetrics),
	)
	if err != nil {
		return fmt.Errorf("building resolver: %w", err)
	}

	srv := httpserver.NewServer(cfg, logger, resolver, metricsReg)

	httpSrv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", cfg.ListenAddr())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
