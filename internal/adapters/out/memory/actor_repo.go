package memory

import (
	"context"
	"sync"

	"couriertrack/internal/core/domain/model/actor"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// ActorRepo is an in-memory actor directory.
type ActorRepo struct {
	mu   sync.RWMutex
	byID map[string]*actor.Actor
}

// NewActorRepo creates an empty in-memory actor directory.
func NewActorRepo() *ActorRepo {
	return &ActorRepo{
		byID: make(map[string]*actor.Actor),
	}
}

// Seed registers an actor in the directory. The lifecycle service itself
// never writes actors; this exists for bootstrap and tests.
func (r *ActorRepo) Seed(actors ...*actor.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range actors {
		r.byID[a.ID().String()] = a
	}
}

// Get retrieves an actor by ID.
func (r *ActorRepo) Get(_ context.Context, id kernel.UUID) (*actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("actor", id.String())
	}
	return a, nil
}
