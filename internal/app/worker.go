package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-leave/internal/entitlement"
	"go-leave/internal/leavepolicy"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/messaging/kafka/producer"
	"go-leave/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker drives the two background loops: outbox publishing and the
// carry-forward expiry sweep.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

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

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	entitlementRepo := entitlement.NewRepository(gormDB)
	entitlementService := entitlement.NewService(gormDB, entitlementRepo, logger)
	leavePolicyRepo := leavepolicy.NewRepository(gormDB)
	leavePolicyService := leavepolicy.NewService(gormDB, leavePolicyRepo, entitlementService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	go runPolicySweep(ctx, leavePolicyService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func runPolicySweep(ctx context.Context, policies leavepolicy.Service, logger *zap.Logger) {
	log := logger.Named("policy.sweep")

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	sweep := func() {
		swept, err := policies.ExpireDue(ctx, time.Now().UTC())
		if err != nil {
			log.Error("policy sweep failed", zap.Error(err))
			return
		}
		if swept > 0 {
			log.Info("policy sweep done", zap.Int("policies", swept))
		}
	}

	sweep()
	for {
		select {
		case <-ctx.Done():
			log.Info("policy sweep stopped")
			return
		case <-ticker.C:
			sweep()
		}
	}
}
