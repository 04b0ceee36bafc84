// Package memory provides map-backed implementations of the persistence
// ports. Used for local development and for concurrency tests where a real
// database would get in the way. Semantics mirror the postgres adapters,
// including the status compare-and-swap.
package memory

import (
	"context"
	"sort"
	"sync"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// DeliveryRepo is an in-memory DeliveryRepository.
type DeliveryRepo struct {
	mu   sync.RWMutex
	byID map[string]*delivery.Delivery
}

// NewDeliveryRepo creates an empty in-memory delivery repository.
func NewDeliveryRepo() *DeliveryRepo {
	return &DeliveryRepo{
		byID: make(map[string]*delivery.Delivery),
	}
}

// Add stores a new delivery aggregate. The store keeps a detached copy, so
// later mutations of the caller's instance do not leak in.
func (r *DeliveryRepo) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	copied, err := detach(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := aggregate.ID().String()
	if _, exists := r.byID[key]; exists {
		return errs.NewValueIsInvalidError("id")
	}
	r.byID[key] = copied
	return nil
}

// Update overwrites a stored delivery unconditionally.
func (r *DeliveryRepo) Update(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	copied, err := detach(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := aggregate.ID().String()
	if _, exists := r.byID[key]; !exists {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}
	r.byID[key] = copied
	return nil
}

// UpdateIfStatus overwrites a stored delivery only while its current status
// still equals expected. The check and the write happen under one lock, so
// of two concurrent transitions from the same source status exactly one
// succeeds.
func (r *DeliveryRepo) UpdateIfStatus(
	_ context.Context,
	aggregate *delivery.Delivery,
	expected delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	copied, err := detach(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := aggregate.ID().String()
	stored, exists := r.byID[key]
	if !exists {
		return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
	}
	if stored.Status() != expected {
		return errs.NewVersionConflictError("delivery", aggregate.ID().String())
	}
	r.byID[key] = copied
	return nil
}

// Get retrieves a delivery by ID. The returned aggregate is a detached copy
// so in-flight mutations by one caller are invisible to others until saved.
func (r *DeliveryRepo) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}
	return detach(stored)
}

// GetAllInStatus retrieves all deliveries in the given status, oldest first.
func (r *DeliveryRepo) GetAllInStatus(
	_ context.Context,
	status delivery.Status,
) ([]*delivery.Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*delivery.Delivery, 0)
	for _, stored := range r.byID {
		if stored.Status() != status {
			continue
		}
		detached, err := detach(stored)
		if err != nil {
			return nil, err
		}
		out = append(out, detached)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})

	return out, nil
}

// detach rebuilds an aggregate from its state so callers never share the
// stored instance.
func detach(stored *delivery.Delivery) (*delivery.Delivery, error) {
	return delivery.RestoreDelivery(
		stored.ID(),
		stored.BusinessID(),
		stored.Pickup(),
		stored.Dropoff(),
		stored.PackageDescription(),
		stored.CreatedBy(),
		stored.Rider(),
		stored.Status(),
		stored.CreatedAt(),
		stored.DeliveredAt(),
	)
}
