package commands

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// ChangeDeliveryStatusCommandHandler is the write path for rider-driven
// status transitions. It enforces, in order: delivery existence, actor
// authorization, and transition legality. The order matters: an
// unauthorized actor must never learn whether a transition would otherwise
// have been legal, and a nonexistent delivery must never reveal transition
// rules.
//
// On success the status update and its audit event commit in one
// transaction, update first, so the event always describes a state that
// actually took effect. The update itself is conditional on the status the
// handler read; a concurrent transition surfaces as a VersionConflictError.
//
// Example:
//
//	handler := NewChangeDeliveryStatusCommandHandler(uowFactory)
//	cmd, _ := NewChangeDeliveryStatusCommand(deliveryID, riderID, delivery.Delivered, "left at reception")
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, delivery.ErrIllegalTransition):
//	    // inspect *delivery.IllegalTransitionError for the allowed targets
//	case errors.Is(err, errs.ErrVersionConflict):
//	    // re-read and retry
//	}
type ChangeDeliveryStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewChangeDeliveryStatusCommandHandler creates a handler for status
// transition operations. Requires a UoWFactory for transactional updates
// across the delivery store and the event log.
func NewChangeDeliveryStatusCommandHandler(uowFactory UoWFactory) ChangeDeliveryStatusCommandHandler {
	return ChangeDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status change command and returns the updated
// delivery.
//
// Failure modes, all leaving the store and event log untouched:
//   - ObjectNotFoundError: the delivery does not exist
//   - OperationForbiddenError: the actor is not the delivery's assigned,
//     active rider
//   - IllegalTransitionError: the target is not reachable from the current
//     status; carries the currently allowed targets
//   - VersionConflictError: a concurrent update won the race
func (h ChangeDeliveryStatusCommandHandler) Handle(
	ctx context.Context,
	command ChangeDeliveryStatusCommand,
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

	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if err = h.authorizeRider(ctx, uow, command.ActorID(), aggregate); err != nil {
		return nil, err
	}

	sourceStatus := aggregate.Status()
	if err = aggregate.TransitionTo(command.TargetStatus()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.UpdateIfStatus(ctx, aggregate, sourceStatus); err != nil {
		return nil, err
	}

	event, err := delivery.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		command.TargetStatus(),
		command.Note(),
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

// authorizeRider checks that the acting identity is the delivery's
// currently assigned rider and still holds an active rider account.
// Every failure collapses into OperationForbiddenError so callers cannot
// probe the directory through this operation.
func (h ChangeDeliveryStatusCommandHandler) authorizeRider(
	ctx context.Context,
	uow UoW,
	actorID kernel.UUID,
	aggregate *delivery.Delivery,
) error {
	acting, err := uow.ActorRepository().Get(ctx, actorID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewOperationForbiddenError(actorID.String(), "update delivery status")
	}
	if err != nil {
		return err
	}

	if !acting.IsRider() || !acting.Active() {
		return errs.NewOperationForbiddenError(actorID.String(), "update delivery status")
	}

	assigned := aggregate.Rider()
	if assigned == nil || !assigned.IsEqual(actorID) {
		return errs.NewOperationForbiddenError(actorID.String(), "update delivery status")
	}

	return nil
}
