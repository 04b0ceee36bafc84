package eventrepo

import (
	"context"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormEventRepository implements EventRepository using GORM.
type GormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM event repository.
func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Append saves a new delivery event to the database.
func (r *GormEventRepository) Append(ctx context.Context, event *delivery.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByDelivery retrieves all events for a delivery in chronological order.
// An unknown delivery ID yields an empty list, not an error.
func (r *GormEventRepository) ListByDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]*delivery.Event, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("delivery_id = ?", deliveryID.Bytes()).
		Order("created_at ASC, seq ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]*delivery.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
