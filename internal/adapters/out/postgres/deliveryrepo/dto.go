// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. This package implements the repository pattern
// for the delivery aggregate, handling the conversion between domain
// entities and database representations.
package deliveryrepo

import (
	"time"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Indexed by status and rider for the dashboard and rider
// listings.
type DeliveryDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID         uuid.UUID  `gorm:"type:uuid;index"`
	RiderID            *uuid.UUID `gorm:"type:uuid;index"`
	Status             int        `gorm:"index"`
	Pickup             ContactDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff            ContactDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	PackageDescription string
	CreatedBy          uuid.UUID `gorm:"type:uuid"`
	CreatedAt          time.Time
	DeliveredAt        *time.Time
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ContactDTO represents the embedded pickup/dropoff contact columns within
// the deliveries table.
type ContactDTO struct {
	Address string
	Name    string
	Phone   string
}

// fromDomain converts a delivery domain aggregate to its database
// representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return DeliveryDTO{
		ID:         aggregate.ID().Bytes(),
		BusinessID: aggregate.BusinessID().Bytes(),
		RiderID:    riderID,
		Status:     int(aggregate.Status()),
		Pickup: ContactDTO{
			Address: aggregate.Pickup().Address(),
			Name:    aggregate.Pickup().Name(),
			Phone:   aggregate.Pickup().Phone(),
		},
		Dropoff: ContactDTO{
			Address: aggregate.Dropoff().Address(),
			Name:    aggregate.Dropoff().Name(),
			Phone:   aggregate.Dropoff().Phone(),
		},
		PackageDescription: aggregate.PackageDescription(),
		CreatedBy:          aggregate.CreatedBy().Bytes(),
		CreatedAt:          aggregate.CreatedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using
// RestoreDelivery, re-checking aggregate invariants on the way out.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	pickup, err := delivery.NewContact(dto.Pickup.Address, dto.Pickup.Name, dto.Pickup.Phone)
	if err != nil {
		return nil, err
	}

	dropoff, err := delivery.NewContact(dto.Dropoff.Address, dto.Dropoff.Name, dto.Dropoff.Phone)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		businessID,
		pickup,
		dropoff,
		dto.PackageDescription,
		createdBy,
		riderID,
		delivery.Status(dto.Status),
		dto.CreatedAt,
		dto.DeliveredAt,
	)
}
