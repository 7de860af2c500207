package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"daily-departed/internal/content"
	"daily-departed/internal/httpapi"
)

const timeout = 10 * time.Second

func serve(ctx context.Context, cfg *config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	catalog, err := content.LoadCatalog(cfg.catalog)
	if err != nil {
		return err
	}

	provider, err := content.NewProvider(catalog, cfg.horizon, nil)
	if err != nil {
		return err
	}
	log.Infow("catalog loaded", "subjects", len(catalog), "horizon_days", cfg.horizon)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.bind, strconv.Itoa(cfg.port)),
		Handler:           httpapi.NewRouter(provider, log),
		IdleTimeout:       10 * time.Minute,
		ReadTimeout:       timeout,
		ReadHeaderTimeout: timeout,
		WriteTimeout:      timeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func generateDays(cmd *cobra.Command, cfg *config, from time.Time) error {
	catalog, err := content.LoadCatalog(cfg.catalog)
	if err != nil {
		return err
	}

	provider, err := content.NewProvider(catalog, cfg.horizon, nil)
	if err != nil {
		return err
	}

	if err := provider.WriteDays(cfg.outDir, from, cfg.days); err != nil {
		return err
	}

	cmd.Printf("rendered %d day files (%s) into %s\n", cfg.days, editionRange(from, cfg.days), cfg.outDir)
	return nil
}
