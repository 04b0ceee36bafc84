// Package eventrepo persists delivery audit events. Events are append-only:
// the repository exposes no update or delete operations.
package eventrepo

import (
	"time"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO represents the database structure for persisting delivery events.
// Seq is a database-assigned insertion sequence; it breaks ties between
// events sharing a created_at timestamp so history order stays stable.
type EventDTO struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	ID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	Note       string
	CreatedBy  uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for delivery events.
func (EventDTO) TableName() string {
	return "delivery_events"
}

func fromDomain(event *delivery.Event) EventDTO {
	return EventDTO{
		ID:         event.ID().Bytes(),
		DeliveryID: event.DeliveryID().Bytes(),
		Status:     int(event.Status()),
		Note:       event.Note(),
		CreatedBy:  event.CreatedBy().Bytes(),
		CreatedAt:  event.CreatedAt(),
	}
}

func toDomain(dto EventDTO) (*delivery.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreEvent(
		id,
		deliveryID,
		delivery.Status(dto.Status),
		dto.Note,
		createdBy,
		dto.CreatedAt,
	)
}
