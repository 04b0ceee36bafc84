package ports

import (
	"context"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
)

// EventRepository defines the persistence contract for the append-only
// delivery event log. Events are never updated or deleted.
type EventRepository interface {
	// Append persists one event record.
	Append(ctx context.Context, event *delivery.Event) error

	// ListByDelivery retrieves all events of one delivery ordered by
	// creation time ascending, reconstructing its history.
	ListByDelivery(ctx context.Context, deliveryID kernel.UUID) ([]*delivery.Event, error)
}
