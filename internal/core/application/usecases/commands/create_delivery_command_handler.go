package commands

import (
	"context"
	"errors"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// deliveryCreatedNote is recorded on the first event of every delivery.
const deliveryCreatedNote = "Delivery created"

// CreateDeliveryCommandHandler handles the business logic for delivery
// registration. Creates the delivery in CREATED status together with its
// first audit event.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory)
//	cmd, _ := NewCreateDeliveryCommand(kernel.NewUUID(), businessID, pickup, dropoff, "", staffID)
//	created, err := handler.Handle(ctx, cmd)
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateDeliveryCommandHandler creates a handler for delivery
// registration. Requires a UoWFactory for transactional persistence.
func NewCreateDeliveryCommandHandler(uowFactory UoWFactory) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery registration command and returns the
// created delivery. The registering actor must exist, be active, and hold a
// capability that allows creating deliveries; otherwise the command fails
// with OperationForbiddenError and nothing is written.
func (h CreateDeliveryCommandHandler) Handle(
	ctx context.Context,
	command CreateDeliveryCommand,
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

	creator, err := uow.ActorRepository().Get(ctx, command.CreatedBy())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewOperationForbiddenError(command.CreatedBy().String(), "create delivery")
	}
	if err != nil {
		return nil, err
	}
	if !creator.CanCreateDeliveries() || !creator.Active() {
		return nil, errs.NewOperationForbiddenError(command.CreatedBy().String(), "create delivery")
	}

	aggregate, err := delivery.NewDelivery(
		command.DeliveryID(),
		command.BusinessID(),
		command.Pickup(),
		command.Dropoff(),
		command.PackageDescription(),
		command.CreatedBy(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	event, err := delivery.NewEvent(
		kernel.NewUUID(),
		aggregate.ID(),
		delivery.Created,
		deliveryCreatedNote,
		command.CreatedBy(),
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
