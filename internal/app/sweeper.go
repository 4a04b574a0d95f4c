package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourhr/internal/approval"
	"tourhr/internal/messaging/kafka"
	"tourhr/internal/shared/connection"

	"go.uber.org/zap"
)

const defaultSweepInterval = time.Hour

// RunSweeper periodically applies approval step timers: overdue steps
// escalate, then expired steps auto-approve. It runs as its own
// process so the request path never carries timer logic.
func RunSweeper() error {
	logger := zap.L().Named("app.sweeper")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	interval := defaultSweepInterval
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			logger.Warn("invalid SWEEP_INTERVAL, using default",
				zap.String("value", v),
				zap.Duration("default", defaultSweepInterval),
			)
		} else {
			interval = parsed
		}
	}

	approvalRepo := approval.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	sweeper := approval.NewSweeper(sqlDB, approvalRepo, outboxRepo, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		logger.Info("sweeper started", zap.Duration("interval", interval))

		// First pass immediately so a restart never waits a full
		// interval with overdue steps in the table.
		if _, err := sweeper.Sweep(ctx, time.Now().UTC()); err != nil {
			logger.Error("sweep pass failed", zap.Error(err))
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := sweeper.Sweep(ctx, time.Now().UTC()); err != nil {
					logger.Error("sweep pass failed", zap.Error(err))
				}
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("sweeper shutting down")
	cancel()

	return nil
}
