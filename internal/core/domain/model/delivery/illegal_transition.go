package delivery

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIllegalTransition is the errors.Is target for rejected status
// transitions.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError is returned when a requested target status is not
// reachable from a delivery's current status. It carries the currently
// allowed targets as structured data so the presentation layer can render
// them for the caller instead of parsing the message.
type IllegalTransitionError struct {
	From    Status
	To      Status
	Allowed []Status
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given
// source and target, capturing the targets allowed from the source status.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{
		From:    from,
		To:      to,
		Allowed: from.AllowedTransitions(),
	}
}

func (e *IllegalTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("%s: cannot transition from %s to %s: %s is a terminal status",
			ErrIllegalTransition, e.From, e.To, e.From)
	}
	return fmt.Sprintf("%s: cannot transition from %s to %s, allowed transitions: %s",
		ErrIllegalTransition, e.From, e.To, joinStatuses(e.Allowed))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

func joinStatuses(statuses []Status) string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
