// Package notifications fans successful lifecycle changes out to the people
// who care about them: SMS to the contacts on the delivery and a Kafka
// message for downstream consumers. Dispatch is asynchronous and best
// effort: a failed notification is logged and dropped, it never rolls back
// or delays the status change that triggered it.
package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/ports"
)

// TextSender delivers one text message to a phone number.
type TextSender interface {
	Send(ctx context.Context, to, text string) (string, error)
}

// StatusPublisher publishes a delivery's current status to the message bus.
type StatusPublisher interface {
	PublishStatusChanged(aggregate *delivery.Delivery) error
}

// Dispatcher consumes lifecycle changes from an in-process queue and fans
// them out. One goroutine drains the queue; senders enqueue without
// blocking and the queue drops on overflow rather than stalling request
// handling.
type Dispatcher struct {
	queue     chan *delivery.Delivery
	sender    TextSender
	publisher StatusPublisher
	actors    ports.ActorRepository
	logger    *slog.Logger
}

const queueCapacity = 256

// NewDispatcher creates a dispatcher. The actor repository resolves rider
// phone numbers for assignment notices. Both sender and publisher may be
// nil when that channel is not configured. Run must be called for the
// queue to drain.
func NewDispatcher(
	sender TextSender,
	publisher StatusPublisher,
	actors ports.ActorRepository,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		queue:     make(chan *delivery.Delivery, queueCapacity),
		sender:    sender,
		publisher: publisher,
		actors:    actors,
		logger:    logger,
	}
}

// Enqueue hands a changed delivery to the dispatcher. Never blocks: when
// the queue is full the notice is dropped and logged.
func (d *Dispatcher) Enqueue(aggregate *delivery.Delivery) {
	select {
	case d.queue <- aggregate:
	default:
		d.logger.Warn("notification queue full, dropping notice",
			"delivery_id", aggregate.ID().String(),
			"status", aggregate.Status().String())
	}
}

// Run drains the queue until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case aggregate := <-d.queue:
			d.dispatch(ctx, aggregate)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, aggregate *delivery.Delivery) {
	if d.publisher != nil {
		if err := d.publisher.PublishStatusChanged(aggregate); err != nil {
			d.logger.Error("failed to publish status change",
				"delivery_id", aggregate.ID().String(),
				"status", aggregate.Status().String(),
				"error", err)
		}
	}

	if d.sender == nil {
		return
	}

	for _, n := range d.notices(ctx, aggregate) {
		if _, err := d.sender.Send(ctx, n.phone, n.text); err != nil {
			d.logger.Error("failed to send sms",
				"delivery_id", aggregate.ID().String(),
				"status", aggregate.Status().String(),
				"error", err)
			continue
		}
		d.logger.Info("sms sent",
			"delivery_id", aggregate.ID().String(),
			"status", aggregate.Status().String())
	}
}

type notice struct {
	phone string
	text  string
}

// notices selects recipients per status: the rider learns about a new
// assignment, the dropoff contact hears when the package is moving, the
// pickup side (the business) hears about the outcome.
func (d *Dispatcher) notices(ctx context.Context, aggregate *delivery.Delivery) []notice {
	pickup := aggregate.Pickup()
	dropoff := aggregate.Dropoff()

	switch aggregate.Status() {
	case delivery.Assigned:
		riderID := aggregate.Rider()
		if riderID == nil {
			return nil
		}
		rider, err := d.actors.Get(ctx, *riderID)
		if err != nil {
			d.logger.Error("failed to resolve rider for assignment notice",
				"delivery_id", aggregate.ID().String(),
				"error", err)
			return nil
		}
		return []notice{{
			phone: rider.Phone(),
			text: fmt.Sprintf("New delivery assigned: pick up at %s, drop off at %s.",
				pickup.Address(), dropoff.Address()),
		}}
	case delivery.PickedUp:
		return []notice{{
			phone: dropoff.Phone(),
			text: fmt.Sprintf("Your package from %s has been picked up and is on its way.",
				pickup.Name()),
		}}
	case delivery.Delivered:
		return []notice{
			{
				phone: pickup.Phone(),
				text: fmt.Sprintf("Your delivery to %s has been delivered.",
					dropoff.Name()),
			},
			{
				phone: dropoff.Phone(),
				text:  "Your package has been delivered. Thank you for using our service.",
			},
		}
	case delivery.Failed:
		return []notice{{
			phone: pickup.Phone(),
			text: fmt.Sprintf("Delivery to %s could not be completed. Our team will contact you.",
				dropoff.Name()),
		}}
	default:
		return nil
	}
}
