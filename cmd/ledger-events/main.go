// Command ledger-events consumes ledger events from AMQP and logs them.
package main

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"financehub/internal/amqp"
	"financehub/internal/cli"
	"financehub/internal/log"
)

func main() {
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentEvents)
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentEvents)

	client := cli.InitAMQP(logger, cfg)
	if client == nil {
		logger.Error("AMQP_URL is required to consume ledger events")
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := cli.SignalContext(logger)
	defer stop()

	handle := func(ctx context.Context, event *amqp.LedgerEvent) error {
		logger.InfoContext(ctx, "Ledger event received",
			log.FieldEventType, event.Type,
			log.FieldEntityID, event.EntityID,
			log.FieldAccountID, event.AccountID,
			log.FieldAmount, event.Amount.String(),
			"timestamp", event.Timestamp)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Consuming ledger events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		return client.ConsumeLedgerEvents(gctx, handle)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Ledger event consumption failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Ledger event consumer stopped")
}
