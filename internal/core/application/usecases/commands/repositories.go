// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"couriertrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across the delivery
// row and its event log.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DeliveryRepoFactory provides access to the delivery repository within
	// a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// EventRepoFactory provides access to the event log within a
	// transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	// ActorRepoFactory provides access to the actor directory within a
	// transaction.
	ActorRepoFactory interface {
		ActorRepository() ports.ActorRepository
	}

	// UoW manages transactions spanning the delivery store, the event log,
	// and the actor directory. Every lifecycle command needs all three:
	// the status update and its audit event must commit together, and
	// authorization reads the directory inside the same transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   deliveryRepo := uow.DeliveryRepository()
	//   eventRepo := uow.EventRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DeliveryRepoFactory
		EventRepoFactory
		ActorRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
