package memory

import (
	"context"
	"sort"
	"sync"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
)

// EventRepo is an in-memory append-only event log.
type EventRepo struct {
	mu     sync.RWMutex
	events []*delivery.Event
}

// NewEventRepo creates an empty in-memory event log.
func NewEventRepo() *EventRepo {
	return &EventRepo{
		events: make([]*delivery.Event, 0),
	}
}

// Append stores one event record.
func (r *EventRepo) Append(_ context.Context, event *delivery.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return nil
}

// ListByDelivery retrieves all events of one delivery in chronological
// order. An unknown delivery ID yields an empty list.
func (r *EventRepo) ListByDelivery(
	_ context.Context,
	deliveryID kernel.UUID,
) ([]*delivery.Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*delivery.Event, 0)
	for _, e := range r.events {
		if e.DeliveryID().IsEqual(deliveryID) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})

	return out, nil
}
