package queries

import (
	"context"
	"database/sql"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveriesQueryHandler lists deliveries from the database for the
// staff dashboard. Uses direct SQL for optimal read performance in the
// CQRS pattern.
//
// Example:
//
//	handler := NewGetDeliveriesQueryHandler(db)
//	query, _ := NewGetDeliveriesQuery(nil, 100, 0)
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to list deliveries: %v", err)
//	    return err
//	}
type GetDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesQueryHandler creates a handler for delivery listing
// queries. Requires a GORM database connection for query execution.
func NewGetDeliveriesQueryHandler(db *gorm.DB) GetDeliveriesQueryHandler {
	return GetDeliveriesQueryHandler{db: db}
}

// Handle executes the listing query. Returns delivery read models ordered
// by creation time descending, newest first, honoring the query's status
// filter and pagination.
func (h GetDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesQuery,
) ([]GetDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			business_id,
			rider_id,
			status,
			pickup_address,
			dropoff_address,
			created_at,
			delivered_at
		FROM deliveries
	`
	args := make([]any, 0, 3)
	if filter := query.StatusFilter(); filter != nil {
		sqlQuery += ` WHERE status = ?`
		args = append(args, int(*filter))
	}
	sqlQuery += `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]GetDeliveriesQueryResponse, 0)
	for rows.Next() {
		var resp GetDeliveriesQueryResponse
		var id, businessID uuid.UUID
		var riderID uuid.NullUUID
		var status int
		var deliveredAt sql.NullTime

		err = rows.Scan(
			&id,
			&businessID,
			&riderID,
			&status,
			&resp.PickupAddress,
			&resp.DropoffAddress,
			&resp.CreatedAt,
			&deliveredAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.BusinessID, err = kernel.UUIDFromBytes(businessID[:])
		if err != nil {
			return nil, err
		}

		if riderID.Valid {
			rID, idErr := kernel.UUIDFromBytes(riderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.RiderID = &rID
		}

		resp.Status = delivery.Status(status)
		if err = resp.Status.Validate(); err != nil {
			return nil, err
		}

		if deliveredAt.Valid {
			t := deliveredAt.Time
			resp.DeliveredAt = &t
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
