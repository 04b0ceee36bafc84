package http

import (
	"time"

	"couriertrack/internal/core/application/usecases/queries"
	"couriertrack/internal/core/domain/model/delivery"
)

// ErrorResponse is the JSON error body returned by every endpoint.
// AllowedTransitions is populated only when a status change is rejected as
// illegal, so API clients can render the valid next steps.
type ErrorResponse struct {
	Code               int      `json:"code"`
	Message            string   `json:"message"`
	AllowedTransitions []string `json:"allowedTransitions,omitempty"`
}

// ContactPayload carries one side of a delivery (pickup or dropoff).
type ContactPayload struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

// CreateDeliveryRequest is the body of POST /api/v1/deliveries.
type CreateDeliveryRequest struct {
	BusinessID         string         `json:"businessId"`
	Pickup             ContactPayload `json:"pickup"`
	Dropoff            ContactPayload `json:"dropoff"`
	PackageDescription string         `json:"packageDescription"`
}

// ChangeStatusRequest is the body of PUT /api/v1/deliveries/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// AssignRiderRequest is the body of PUT /api/v1/deliveries/:id/assign.
type AssignRiderRequest struct {
	RiderID string `json:"riderId"`
}

// DeliveryResponse is the full representation returned by write endpoints.
type DeliveryResponse struct {
	ID                 string         `json:"id"`
	BusinessID         string         `json:"businessId"`
	RiderID            *string        `json:"riderId,omitempty"`
	Status             string         `json:"status"`
	Pickup             ContactPayload `json:"pickup"`
	Dropoff            ContactPayload `json:"dropoff"`
	PackageDescription string         `json:"packageDescription"`
	CreatedBy          string         `json:"createdBy"`
	CreatedAt          time.Time      `json:"createdAt"`
	DeliveredAt        *time.Time     `json:"deliveredAt,omitempty"`
}

// DeliveryListItem is the compact representation returned by the listing
// endpoint.
type DeliveryListItem struct {
	ID             string     `json:"id"`
	BusinessID     string     `json:"businessId"`
	RiderID        *string    `json:"riderId,omitempty"`
	Status         string     `json:"status"`
	PickupAddress  string     `json:"pickupAddress"`
	DropoffAddress string     `json:"dropoffAddress"`
	CreatedAt      time.Time  `json:"createdAt"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}

// EventResponse is one entry of a delivery's history.
type EventResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

func toDeliveryResponse(aggregate *delivery.Delivery) DeliveryResponse {
	resp := DeliveryResponse{
		ID:         aggregate.ID().String(),
		BusinessID: aggregate.BusinessID().String(),
		Status:     aggregate.Status().String(),
		Pickup: ContactPayload{
			Address: aggregate.Pickup().Address(),
			Name:    aggregate.Pickup().Name(),
			Phone:   aggregate.Pickup().Phone(),
		},
		Dropoff: ContactPayload{
			Address: aggregate.Dropoff().Address(),
			Name:    aggregate.Dropoff().Name(),
			Phone:   aggregate.Dropoff().Phone(),
		},
		PackageDescription: aggregate.PackageDescription(),
		CreatedBy:          aggregate.CreatedBy().String(),
		CreatedAt:          aggregate.CreatedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
	}
	if rider := aggregate.Rider(); rider != nil {
		id := rider.String()
		resp.RiderID = &id
	}
	return resp
}

func toDeliveryListItem(row queries.GetDeliveriesQueryResponse) DeliveryListItem {
	item := DeliveryListItem{
		ID:             row.ID.String(),
		BusinessID:     row.BusinessID.String(),
		Status:         row.Status.String(),
		PickupAddress:  row.PickupAddress,
		DropoffAddress: row.DropoffAddress,
		CreatedAt:      row.CreatedAt,
		DeliveredAt:    row.DeliveredAt,
	}
	if row.RiderID != nil {
		id := row.RiderID.String()
		item.RiderID = &id
	}
	return item
}

func toEventResponse(row queries.GetDeliveryHistoryQueryResponse) EventResponse {
	return EventResponse{
		ID:        row.ID.String(),
		Status:    row.Status.String(),
		Note:      row.Note,
		CreatedBy: row.CreatedBy.String(),
		CreatedAt: row.CreatedAt,
	}
}
