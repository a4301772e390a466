package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go-leave/internal/entitlement"
	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka/consumer"
	"go-leave/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer seeds a default entitlement for every employee.created event.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	seed := consumer.SeedConfig{
		LeaveTypeID: os.Getenv("DEFAULT_LEAVE_TYPE_ID"),
		TotalDays:   25,
	}
	if days := os.Getenv("DEFAULT_LEAVE_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			seed.TotalDays = n
		}
	}
	if seed.LeaveTypeID == "" {
		return fmt.Errorf("DEFAULT_LEAVE_TYPE_ID is required")
	}

	entitlementRepo := entitlement.NewRepository(gormDB)
	entitlementService := entitlement.NewService(gormDB, entitlementRepo, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        "go-leave-entitlement-seed",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, entitlementService, seed, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
