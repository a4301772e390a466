package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-leave/internal/entitlement"
	entitlementerrors "go-leave/internal/entitlement/errors"
	"go-leave/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// SeedConfig names the leave type (and allotment) every new employee is
// entitled to by default.
type SeedConfig struct {
	LeaveTypeID string
	TotalDays   int
}

// ConsumeEmployeeLifecycle seeds a default entitlement whenever an
// employee.created event arrives. An entitlement that already exists is
// treated as already-seeded and the message is committed.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	entitlementService entitlement.Service,
	seed SeedConfig,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		_, err = entitlementService.Create(ctx, entitlement.CreateEntitlementRequest{
			EmployeeID:  event.EmployeeID,
			LeaveTypeID: seed.LeaveTypeID,
			Year:        time.Now().UTC().Year(),
			TotalDays:   seed.TotalDays,
		})
		if err != nil {
			if errors.Is(err, entitlementerrors.ErrEntitlementExists) {
				log.Warn("entitlement already seeded for employee, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("seed default entitlement failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default entitlement seeded from employee_created event",
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
