package commands

import (
	"context"
	"errors"
	"fmt"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// AssignRiderCommandHandler is the write path for rider assignment.
// It checks the acting identity's staff/admin capability, resolves the
// rider through the directory, and applies the assignment plus its audit
// event in one transaction.
//
// Assignment deliberately overwrites any non-terminal status with ASSIGNED:
// staff use reassignment to restart a stuck delivery with another rider,
// and the history of what happened before the reset stays in the event log.
//
// Example:
//
//	handler := NewAssignRiderCommandHandler(uowFactory)
//	cmd, _ := NewAssignRiderCommand(deliveryID, staffID, riderID)
//	updated, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrOperationForbidden) {
//	    // acting identity is not staff or admin
//	}
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignRiderCommandHandler creates a handler for rider assignment
// operations. Requires a UoWFactory for transactional updates across the
// delivery store and the event log.
func NewAssignRiderCommandHandler(uowFactory UoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command and returns the updated delivery.
//
// Failure modes, all leaving the store and event log untouched:
//   - OperationForbiddenError: the acting identity is unknown, inactive, or
//     lacks staff/admin capability
//   - ObjectNotFoundError: the rider or the delivery does not exist
//   - ValueIsInvalidError: the referenced account is not a rider, or the
//     rider is not active
//   - IllegalTransitionError: the delivery is already terminal
func (h AssignRiderCommandHandler) Handle(
	ctx context.Context,
	command AssignRiderCommand,
) (*delivery.Delivery, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actorRepo := uow.ActorRepository()

	acting, err := actorRepo.Get(ctx, command.ActorID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewOperationForbiddenError(command.ActorID().String(), "assign rider")
	}
	if err != nil {
		return nil, err
	}
	if !acting.CanAssignRiders() || !acting.Active() {
		return nil, errs.NewOperationForbiddenError(command.ActorID().String(), "assign rider")
	}

	rider, err := actorRepo.Get(ctx, command.RiderID())
	if err != nil {
		return nil, err
	}
	if !rider.IsRider() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"riderId",
			fmt.Errorf("actor %s is not a rider", rider.ID()),
		)
	}
	if !rider.Active() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"riderId",
			fmt.Errorf("rider %s is not active", rider.ID()),
		)
	}

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.AssignRider(rider.ID()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := delivery.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		delivery.Assigned,
		assignmentNote(rider.Name(), rider.ID()),
		command.ActorID(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.EventRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

// assignmentNote names the rider in the audit event, falling back to the ID
// for accounts without a display name.
func assignmentNote(riderName string, riderID kernel.UUID) string {
	if riderName == "" {
		return fmt.Sprintf("Assigned to rider %s", riderID)
	}
	return fmt.Sprintf("Assigned to rider %s", riderName)
}
