package delivery

import (
	"errors"
	"fmt"
	"time"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent constructor")

// Event is an immutable audit record of one delivery status change.
// Events are created once per successful transition or assignment, never
// updated or deleted, and ordered by creation timestamp to reconstruct a
// delivery's history.
type Event struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	status     Status
	note       string
	createdBy  kernel.UUID
	createdAt  time.Time

	isConstructed bool
}

// DefaultNote synthesizes the human-readable note recorded when the caller
// does not supply one.
func DefaultNote(status Status) string {
	return fmt.Sprintf("Status updated to %s", status)
}

// NewEvent creates an audit record for a status change that has already
// been applied. An empty note is replaced with the synthesized default.
func NewEvent(
	id kernel.UUID,
	deliveryID kernel.UUID,
	status Status,
	note string,
	createdBy kernel.UUID,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryID.Validate(),
		status.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	if note == "" {
		note = DefaultNote(status)
	}

	return &Event{
		id:            id,
		deliveryID:    deliveryID,
		status:        status,
		note:          note,
		createdBy:     createdBy,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an Event from persistence.
func RestoreEvent(
	id kernel.UUID,
	deliveryID kernel.UUID,
	status Status,
	note string,
	createdBy kernel.UUID,
	createdAt time.Time,
) (*Event, error) {
	if err := errors.Join(
		id.Validate(),
		deliveryID.Validate(),
		status.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	if note == "" {
		return nil, errs.NewValueIsRequiredError("note")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Event{
		id:            id,
		deliveryID:    deliveryID,
		status:        status,
		note:          note,
		createdBy:     createdBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Event instance was properly constructed.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// DeliveryID returns the identifier of the delivery this event belongs to.
func (e *Event) DeliveryID() kernel.UUID {
	return e.deliveryID
}

// Status returns the status recorded by this event.
func (e *Event) Status() Status {
	return e.status
}

// Note returns the human-readable note attached to the event.
func (e *Event) Note() string {
	return e.note
}

// CreatedBy returns the actor who caused the recorded change.
func (e *Event) CreatedBy() kernel.UUID {
	return e.createdBy
}

// CreatedAt returns the event's creation timestamp.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}
