package ports

import (
	"context"

	"couriertrack/internal/core/domain/model/actor"
	"couriertrack/internal/core/domain/model/kernel"
)

// ActorRepository is the directory of identities known to the system.
// The lifecycle manager reads it to validate rider and staff capability;
// account management itself lives outside this service.
type ActorRepository interface {
	// Get retrieves an actor by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error)
}
