// Package queries contains read-side operations of the CQRS architecture.
// Query handlers read directly from the database with raw SQL, bypassing
// the aggregate constructors, and return flat read models shaped for
// display.
package queries

import (
	"errors"
	"time"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/guard"
)

var ErrGetDeliveriesQueryIsNotConstructed = errors.New(
	"GetDeliveriesQuery must be created via NewGetDeliveriesQuery constructor",
)

// defaultPageSize bounds unpaginated listing requests.
const defaultPageSize = 100

// GetDeliveriesQuery retrieves deliveries for the staff dashboard, newest
// first, optionally filtered by status.
//
// Example:
//
//	status := delivery.Assigned
//	query, _ := NewGetDeliveriesQuery(&status, 50, 0)
//	handler := NewGetDeliveriesQueryHandler(db)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list deliveries: %w", err)
//	}
type GetDeliveriesQuery struct {
	statusFilter *delivery.Status
	limit        int
	offset       int

	guard guard.ConstructorGuard
}

// NewGetDeliveriesQuery creates a listing query. A nil statusFilter returns
// deliveries in every status. A non-positive limit falls back to the
// default page size; a negative offset is invalid.
func NewGetDeliveriesQuery(statusFilter *delivery.Status, limit, offset int) (GetDeliveriesQuery, error) {
	if statusFilter != nil {
		if err := statusFilter.Validate(); err != nil {
			return GetDeliveriesQuery{}, err
		}
	}
	if offset < 0 {
		return GetDeliveriesQuery{}, errs.NewValueIsInvalidError("offset")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}

	return GetDeliveriesQuery{
		statusFilter: statusFilter,
		limit:        limit,
		offset:       offset,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveriesQueryIsNotConstructed if validation fails.
func (q GetDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesQueryIsNotConstructed)
}

// StatusFilter returns the optional status filter; nil means all statuses.
func (q GetDeliveriesQuery) StatusFilter() *delivery.Status {
	return q.statusFilter
}

// Limit returns the maximum number of rows to return.
func (q GetDeliveriesQuery) Limit() int {
	return q.limit
}

// Offset returns the number of rows to skip.
func (q GetDeliveriesQuery) Offset() int {
	return q.offset
}

// GetDeliveriesQueryResponse is the read model for one delivery row on the
// dashboard listing.
type GetDeliveriesQueryResponse struct {
	ID             kernel.UUID
	BusinessID     kernel.UUID
	RiderID        *kernel.UUID
	Status         delivery.Status
	PickupAddress  string
	DropoffAddress string
	CreatedAt      time.Time
	DeliveredAt    *time.Time
}
