package queries

import (
	"errors"
	"time"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/guard"
)

var ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
	"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
)

// GetDeliveryHistoryQuery retrieves the full audit trail of one delivery,
// oldest event first, reconstructing what happened to it and when.
//
// Example:
//
//	query, _ := NewGetDeliveryHistoryQuery(deliveryID)
//	handler := NewGetDeliveryHistoryQueryHandler(db)
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load history: %w", err)
//	}
//	for _, event := range history {
//	    fmt.Printf("%s %s: %s\n", event.CreatedAt, event.Status, event.Note)
//	}
type GetDeliveryHistoryQuery struct {
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryHistoryQuery creates a history query for the given
// delivery. Validates that the identifier is a valid UUID.
func NewGetDeliveryHistoryQuery(deliveryID kernel.UUID) (GetDeliveryHistoryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryHistoryQuery{}, err
	}

	return GetDeliveryHistoryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryHistoryQueryIsNotConstructed if validation fails.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

// DeliveryID returns the delivery whose history is requested.
func (q GetDeliveryHistoryQuery) DeliveryID() kernel.UUID {
	return q.deliveryID
}

// GetDeliveryHistoryQueryResponse is the read model for one audit event in
// a delivery's history.
type GetDeliveryHistoryQueryResponse struct {
	ID         kernel.UUID
	DeliveryID kernel.UUID
	Status     delivery.Status
	Note       string
	CreatedBy  kernel.UUID
	CreatedAt  time.Time
}
