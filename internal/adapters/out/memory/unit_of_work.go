package memory

import (
	"context"

	"couriertrack/internal/core/ports"
)

// UnitOfWorkFactory hands out UnitOfWork instances over one shared set of
// in-memory stores.
type UnitOfWorkFactory struct {
	deliveries *DeliveryRepo
	events     *EventRepo
	actors     *ActorRepo
}

// NewUnitOfWorkFactory creates a factory over the given stores.
func NewUnitOfWorkFactory(
	deliveries *DeliveryRepo,
	events *EventRepo,
	actors *ActorRepo,
) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		deliveries: deliveries,
		events:     events,
		actors:     actors,
	}
}

// Create produces a new UnitOfWork over the shared stores.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		deliveries: f.deliveries,
		events:     f.events,
		actors:     f.actors,
	}
}

// UnitOfWork implements the transaction boundary over in-memory stores.
// There is no real transaction to manage: writes apply immediately and
// Rollback after a failed operation is a no-op. Per-delivery consistency
// still holds because the delivery repository's status compare-and-swap
// rejects the second of two concurrent transitions, and handlers append
// the audit event only after the swap succeeds.
type UnitOfWork struct {
	deliveries *DeliveryRepo
	events     *EventRepo
	actors     *ActorRepo
}

// Begin is a no-op for in-memory stores.
func (uow *UnitOfWork) Begin(_ context.Context) error { return nil }

// Commit is a no-op for in-memory stores.
func (uow *UnitOfWork) Commit(_ context.Context) error { return nil }

// Rollback is a no-op for in-memory stores.
func (uow *UnitOfWork) Rollback(_ context.Context) error { return nil }

// DeliveryRepository returns the shared delivery store.
func (uow *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return uow.deliveries
}

// EventRepository returns the shared event log.
func (uow *UnitOfWork) EventRepository() ports.EventRepository {
	return uow.events
}

// ActorRepository returns the shared actor directory.
func (uow *UnitOfWork) ActorRepository() ports.ActorRepository {
	return uow.actors
}
