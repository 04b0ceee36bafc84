// Package actorrepo provides persistence for actor identities. The service
// does not own actor registration, so the repository is read-only from the
// application's point of view.
package actorrepo

import (
	"couriertrack/internal/core/domain/model/actor"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActorDTO represents the database structure for persisting actors.
type ActorDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string
	Phone  string
	Role   string `gorm:"index"`
	Active bool
}

// TableName specifies the database table name for actors.
func (ActorDTO) TableName() string {
	return "actors"
}

// FromDomain converts an actor to its database representation. Exposed for
// test fixtures that seed the actors table directly.
func FromDomain(a *actor.Actor) ActorDTO {
	return ActorDTO{
		ID:     a.ID().Bytes(),
		Name:   a.Name(),
		Phone:  a.Phone(),
		Role:   string(a.Role()),
		Active: a.Active(),
	}
}

func toDomain(dto ActorDTO) (*actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return actor.NewActor(id, dto.Name, dto.Phone, actor.Role(dto.Role), dto.Active)
}
