package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"parcelgate/internal/app"
	"parcelgate/internal/platform/config"
	"parcelgate/internal/platform/httpserver"
	"parcelgate/internal/platform/logger"
	httptransport "parcelgate/internal/transport/http"
)

// main wires dependencies, exposes the HTTP router and keeps the server
// lifecycle small. Resolution logic lives in internal packages.
func main() {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load("../../.env")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.Build(ctx, cfg, log, app.Options{Registerer: reg})
	if err != nil {
		log.Error("failed to build service", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	deps := httptransport.Deps{
		Parcels:  a.Service,
		Resolver: a.Resolver,
		Lister:   a.Lister,
		Gatherer: reg,
		Logger:   log,
	}
	// Typed nils must not reach the interface fields.
	if a.Archiver != nil {
		deps.Archiver = a.Archiver
	}
	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(deps),
		httpserver.WithWriteTimeout(cfg.Server.WriteTimeout),
	)

	log.Info("starting parcelgate",
		"addr", cfg.Server.Addr,
		"diagnostics", cfg.Diagnostics.Backend,
		"storage", cfg.Storage.Type,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		log.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("parcelgate stopped")
}
