// Command consumer appends one line per issued booking to the ticket log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/logger"
	"github.com/iliyamo/event-ticketing/internal/queue"
)

func main() {
	cfg := config.LoadConsumerConfig()
	log, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("consumer started", zap.String("queue", cfg.TicketsQueue), zap.String("log_path", cfg.TicketLogPath))
	c := queue.NewConsumer(cfg.AMQPURL, cfg.TicketsQueue, cfg.TicketLogPath, log)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("consumer", zap.Error(err))
	}
	log.Info("consumer stopped")
}
