package actorrepo

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/model/actor"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormActorRepository implements ActorRepository using GORM.
type GormActorRepository struct {
	db *gorm.DB
}

// NewGormActorRepository creates a new GORM actor repository.
func NewGormActorRepository(db *gorm.DB) *GormActorRepository {
	return &GormActorRepository{db: db}
}

// Get retrieves an actor by ID.
func (r *GormActorRepository) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ActorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("actor", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
