package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/config"
	"github.com/campus-union/cms-service/internal/mail"
	"github.com/campus-union/cms-service/internal/observability"
	"github.com/campus-union/cms-service/internal/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	sender := mail.NewLogSender(logger, cfg.Mail.From)
	handler := mail.NewHandler(sender, logger)

	worker, err := mail.NewWorker(mail.WorkerConfig{
		RedisOpts:   persistence.AsynqRedisOpt(cfg.Redis),
		Concurrency: cfg.Mail.Concurrency,
		Logger:      logger,
		Handler:     handler,
	})
	if err != nil {
		logger.Fatal("failed to init mail worker", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("mail worker started", zap.Int("concurrency", cfg.Mail.Concurrency))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("mail worker stopped", zap.Error(err))
	}
	logger.Info("mail worker stopped")
}
