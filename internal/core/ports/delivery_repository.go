package ports

import (
	"context"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate
	// unconditionally. Used by assignment, which may overwrite any
	// non-terminal state.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateIfStatus persists changes to an existing delivery only if its
	// stored status still equals expected. Returns a VersionConflictError
	// when a concurrent update changed the status between read and write.
	// This is the compare-and-swap that serializes per-delivery transitions.
	UpdateIfStatus(ctx context.Context, aggregate *delivery.Delivery, expected delivery.Status) error

	// Get retrieves a delivery aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetAllInStatus retrieves all deliveries currently in the given status.
	GetAllInStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error)
}
