// Package main is the entry point for the invoice reconciliation service.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/handler"
	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/pdftext"
	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/service"
	"github.com/FACorreiaa/invoice-reconciler/pkg/config"
	sweeper "github.com/FACorreiaa/invoice-reconciler/pkg/cron"
	"github.com/FACorreiaa/invoice-reconciler/pkg/storage"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		return err
	}

	svc := service.NewConvertService(pdftext.New(), logger).
		WithTolerance(cfg.Reconcile.Tolerance)

	h := handler.NewConvertHandler(svc, store, cfg.Server.APIKey, logger)

	limiter := rate.NewLimiter(
		rate.Limit(cfg.Server.RateLimitPerSecond),
		cfg.Server.RateLimitBurst,
	)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-API-KEY"},
	})

	var routes http.Handler = h.Routes()
	routes = handler.RateLimit(limiter)(routes)
	routes = corsMiddleware.Handler(routes)
	routes = handler.RequestLogger(logger)(routes)

	sweep := sweeper.NewSweeper(cfg.Sweep, svc, logger)
	if err := sweep.Start(); err != nil {
		return err
	}
	defer sweep.Stop()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      routes,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
