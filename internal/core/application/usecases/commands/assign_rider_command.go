package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents a staff or admin request to (re-)assign a
// rider to a delivery. Assignment always forces the delivery back to
// ASSIGNED, including deliveries already picked up or in transit.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand(deliveryID, staffID, riderID)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//
//	handler := NewAssignRiderCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actorID    kernel.UUID
	riderID    kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to a delivery.
// Validates that all three identifiers are valid UUIDs.
func NewAssignRiderCommand(deliveryID, actorID, riderID kernel.UUID) (AssignRiderCommand, error) {
	assignCommand := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		assignCommand.setDeliveryID(deliveryID),
		assignCommand.setActorID(actorID),
		assignCommand.setRiderID(riderID),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return assignCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignRiderCommandIsNotConstructed if validation fails.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to assign.
func (c AssignRiderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns the staff or admin identity performing the assignment.
func (c AssignRiderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// RiderID returns the rider to assign.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *AssignRiderCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *AssignRiderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
