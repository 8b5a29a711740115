package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"financehub/internal/cli"
	apphttp "financehub/internal/http"
	"financehub/internal/log"
	"financehub/internal/services"
)

func main() {
	seed := flag.Bool("seed", false, "populate an empty ledger with demo data and exit")
	flag.Parse()

	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentApp)

	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	// A nil *amqp.Client must not become a non-nil EventPublisher.
	var publisher services.EventPublisher
	if client := cli.InitAMQP(logger, cfg); client != nil {
		publisher = client
	}
	svc := services.NewLedgerService(sqliteRepo, publisher)
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close ledger service", log.FieldError, err)
		}
	}()

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	if *seed {
		seeded, err := svc.Seed(ctx)
		if err != nil {
			logger.Error("Seed failed", log.FieldError, err)
			os.Exit(1)
		}
		logger.Info("Seed completed", "seeded", seeded)
		return
	}

	srv := apphttp.NewServer(":"+cfg.Port, svc, apphttp.Options{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     cfg.RequestTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting financehub server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
