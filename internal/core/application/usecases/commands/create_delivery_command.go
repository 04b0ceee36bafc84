package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents a request to register a new delivery for
// a business: who to collect the package from, who to hand it to, and an
// optional description of what is being carried.
//
// Example:
//
//	pickup, _ := delivery.NewContact("12 Uhuru St", "Asha", "+255700000001")
//	dropoff, _ := delivery.NewContact("3 Bagamoyo Rd", "Juma", "+255700000002")
//	cmd, err := NewCreateDeliveryCommand(kernel.NewUUID(), businessID, pickup, dropoff, "documents", staffID)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID         kernel.UUID
	businessID         kernel.UUID
	pickup             delivery.Contact
	dropoff            delivery.Contact
	packageDescription string
	createdBy          kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates the identifiers and both contacts; the package description may
// be empty.
func NewCreateDeliveryCommand(
	deliveryID kernel.UUID,
	businessID kernel.UUID,
	pickup delivery.Contact,
	dropoff delivery.Contact,
	packageDescription string,
	createdBy kernel.UUID,
) (CreateDeliveryCommand, error) {
	createCommand := CreateDeliveryCommand{
		packageDescription: packageDescription,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		createCommand.setDeliveryID(deliveryID),
		createCommand.setBusinessID(businessID),
		createCommand.setPickup(pickup),
		createCommand.setDropoff(dropoff),
		createCommand.setCreatedBy(createdBy),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return createCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDeliveryCommandIsNotConstructed if validation fails.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the unique identifier for the new delivery.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// BusinessID returns the owning business identifier.
func (c CreateDeliveryCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// Pickup returns the pickup contact.
func (c CreateDeliveryCommand) Pickup() delivery.Contact {
	return c.pickup
}

// Dropoff returns the dropoff contact.
func (c CreateDeliveryCommand) Dropoff() delivery.Contact {
	return c.dropoff
}

// PackageDescription returns the optional package description.
func (c CreateDeliveryCommand) PackageDescription() string {
	return c.packageDescription
}

// CreatedBy returns the actor registering the delivery.
func (c CreateDeliveryCommand) CreatedBy() kernel.UUID {
	return c.createdBy
}

func (c *CreateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *CreateDeliveryCommand) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return err
	}

	c.businessID = businessID
	return nil
}

func (c *CreateDeliveryCommand) setPickup(pickup delivery.Contact) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateDeliveryCommand) setDropoff(dropoff delivery.Contact) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	c.dropoff = dropoff
	return nil
}

func (c *CreateDeliveryCommand) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return err
	}

	c.createdBy = createdBy
	return nil
}
