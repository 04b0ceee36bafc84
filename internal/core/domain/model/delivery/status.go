package delivery

import (
	"fmt"

	"couriertrack/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a forward-only state machine:
//
//	CREATED ──> ASSIGNED ──> PICKED_UP ──> IN_TRANSIT ──> DELIVERED
//	                │             │             │
//	                └─────────────┴─────────────┴──> FAILED
//
// DELIVERED and FAILED are terminal. The transition rules live in
// AllowedTransitions so they can be unit-tested in isolation from storage.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when a delivery is first registered.
	// Deliveries in this status are waiting to be assigned to a rider.
	Created

	// Assigned indicates the delivery has been assigned to a rider.
	Assigned

	// PickedUp indicates the assigned rider has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the dropoff contact.
	InTransit

	// Delivered indicates the package reached the dropoff contact.
	// Terminal.
	Delivered

	// Failed indicates the delivery could not be completed. Terminal.
	Failed
)

// statusNames maps every Status to its wire representation. The upper snake
// case form is what the HTTP API, the database, and event records carry.
func statusNames() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Failed:    "FAILED",
	}
}

// validStatusNames maps only valid Status values. Unknown is excluded on
// purpose so it never round-trips through parsing or validation.
func validStatusNames() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Assigned:  "ASSIGNED",
		PickedUp:  "PICKED_UP",
		InTransit: "IN_TRANSIT",
		Delivered: "DELIVERED",
		Failed:    "FAILED",
	}
}

// ParseStatus converts a wire-format status name into a Status.
// Returns a ValueIsInvalidError for anything outside the valid set,
// including "UNKNOWN".
func ParseStatus(name string) (Status, error) {
	for status, statusName := range validStatusNames() {
		if statusName == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", name),
	)
}

// Validate checks that the Status is one of the valid enum members.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := validStatusNames()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", int(s)),
		)
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer and is safe to call on any value; invalid values
// render as "UNKNOWN".
func (s Status) String() string {
	if name, ok := statusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// AllowedTransitions returns the set of statuses reachable from s.
// This is the single authority on transition legality:
//
//	Created    -> Assigned
//	Assigned   -> PickedUp, Failed
//	PickedUp   -> InTransit, Failed
//	InTransit  -> Delivered, Failed
//	Delivered  -> (none)
//	Failed     -> (none)
//
// Terminal and invalid statuses return an empty slice.
func (s Status) AllowedTransitions() []Status {
	switch s {
	case Created:
		return []Status{Assigned}
	case Assigned:
		return []Status{PickedUp, Failed}
	case PickedUp:
		return []Status{InTransit, Failed}
	case InTransit:
		return []Status{Delivered, Failed}
	default:
		return []Status{}
	}
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range s.AllowedTransitions() {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidateCanHaveRider validates the consistency between delivery status and
// rider assignment when restoring an aggregate from persistence.
//
// A delivery in Created status must not have a rider; every other valid
// status is only reachable after assignment and therefore must have one.
func (s Status) ValidateCanHaveRider(rider bool) error {
	if rider && s == Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}

	if !rider && s != Created {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}

	return nil
}
