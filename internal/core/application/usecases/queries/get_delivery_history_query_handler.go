package queries

import (
	"context"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryHistoryQueryHandler reads the append-only event log of one
// delivery. Events come back oldest first; insertion order is significant
// for history display.
type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryHistoryQueryHandler creates a handler for delivery history
// queries. Requires a GORM database connection for query execution.
func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle executes the history query. An unknown delivery yields an empty
// history rather than an error; existence checks belong to the write side.
func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryHistoryQuery,
) ([]GetDeliveryHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			status,
			note,
			created_by,
			created_at
		FROM delivery_events
		WHERE delivery_id = ?
		ORDER BY created_at ASC, seq ASC
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]GetDeliveryHistoryQueryResponse, 0)
	for rows.Next() {
		var resp GetDeliveryHistoryQueryResponse
		var id, deliveryID, createdBy uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&deliveryID,
			&status,
			&resp.Note,
			&createdBy,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		resp.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:])
		if err != nil {
			return nil, err
		}

		resp.CreatedBy, err = kernel.UUIDFromBytes(createdBy[:])
		if err != nil {
			return nil, err
		}

		resp.Status = delivery.Status(status)
		if err = resp.Status.Validate(); err != nil {
			return nil, err
		}

		events = append(events, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
