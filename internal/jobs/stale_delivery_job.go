package jobs

import (
	"context"
	"log/slog"
	"time"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// activeStatuses are the non-terminal statuses a delivery can sit in while
// someone is supposed to be acting on it.
var activeStatuses = []delivery.Status{
	delivery.Created,
	delivery.Assigned,
	delivery.PickedUp,
	delivery.InTransit,
}

// StaleDeliveryJob watches for deliveries that stopped making progress.
// Runs every minute, and for every active delivery whose latest recorded
// event is older than the threshold, emits a warning the operations team
// can alert on.
type StaleDeliveryJob struct {
	uowFactory ports.UnitOfWorkFactory
	threshold  time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleDeliveryJob creates a watchdog over deliveries idle longer than
// threshold.
func NewStaleDeliveryJob(
	uowFactory ports.UnitOfWorkFactory,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleDeliveryJob {
	return &StaleDeliveryJob{
		uowFactory: uowFactory,
		threshold:  threshold,
		cron:       cron.New(),
		logger:     logger.With("component", "stale_delivery_job"),
	}
}

// Start begins the watchdog to run every minute.
func (j *StaleDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.scan(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale delivery scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale delivery job started (running every minute)")
	return nil
}

// Stop stops the watchdog.
func (j *StaleDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale delivery job stopped")
}

func (j *StaleDeliveryJob) scan(ctx context.Context) error {
	uow := j.uowFactory.Create()
	deliveryRepo := uow.DeliveryRepository()
	eventRepo := uow.EventRepository()

	now := time.Now().UTC()

	for _, status := range activeStatuses {
		deliveries, err := deliveryRepo.GetAllInStatus(ctx, status)
		if err != nil {
			return err
		}

		for _, aggregate := range deliveries {
			lastActivity := aggregate.CreatedAt()

			events, err := eventRepo.ListByDelivery(ctx, aggregate.ID())
			if err != nil {
				return err
			}
			if len(events) > 0 {
				lastActivity = events[len(events)-1].CreatedAt()
			}

			if idle := now.Sub(lastActivity); idle > j.threshold {
				j.logger.WarnContext(ctx, "Delivery has stalled",
					"delivery_id", aggregate.ID().String(),
					"status", aggregate.Status().String(),
					"idle", idle.Round(time.Second).String())
			}
		}
	}

	return nil
}
