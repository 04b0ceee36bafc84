package commands

import (
	"errors"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrChangeDeliveryStatusCommandIsNotConstructed = errors.New(
	"ChangeDeliveryStatusCommand must be created via NewChangeDeliveryStatusCommand constructor",
)

// ChangeDeliveryStatusCommand represents a rider's request to move a
// delivery to a new status: picked up, in transit, delivered, or failed.
// The optional note is recorded on the audit event; when omitted a default
// note is synthesized.
//
// Example:
//
//	cmd, err := NewChangeDeliveryStatusCommand(deliveryID, riderID, delivery.PickedUp, "")
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//
//	handler := NewChangeDeliveryStatusCommandHandler(uowFactory)
//	updated, err := handler.Handle(ctx, cmd)
type ChangeDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	actorID      kernel.UUID
	targetStatus delivery.Status
	note         string

	guard guard.ConstructorGuard
}

// NewChangeDeliveryStatusCommand creates a command to change a delivery's
// status. Validates that both identifiers are valid UUIDs and that the
// target is a member of the status enum; an unrecognized target fails here,
// before any store is touched.
func NewChangeDeliveryStatusCommand(
	deliveryID kernel.UUID,
	actorID kernel.UUID,
	targetStatus delivery.Status,
	note string,
) (ChangeDeliveryStatusCommand, error) {
	statusCommand := ChangeDeliveryStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		statusCommand.setDeliveryID(deliveryID),
		statusCommand.setActorID(actorID),
		statusCommand.setTargetStatus(targetStatus),
	); err != nil {
		return ChangeDeliveryStatusCommand{}, err
	}

	return statusCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeDeliveryStatusCommandIsNotConstructed if validation fails.
func (c ChangeDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryStatusCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to change.
func (c ChangeDeliveryStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// ActorID returns the identity attempting the change.
func (c ChangeDeliveryStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// TargetStatus returns the requested target status.
func (c ChangeDeliveryStatusCommand) TargetStatus() delivery.Status {
	return c.targetStatus
}

// Note returns the optional note for the audit event; may be empty.
func (c ChangeDeliveryStatusCommand) Note() string {
	return c.note
}

func (c *ChangeDeliveryStatusCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ChangeDeliveryStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *ChangeDeliveryStatusCommand) setTargetStatus(targetStatus delivery.Status) error {
	if err := targetStatus.Validate(); err != nil {
		return err
	}

	c.targetStatus = targetStatus
	return nil
}
