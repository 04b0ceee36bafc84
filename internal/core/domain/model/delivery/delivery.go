package delivery

import (
	"errors"
	"time"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
// created through NewDelivery or RestoreDelivery. This ensures all
// deliveries are properly validated.
var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")

// Delivery represents one courier job tracked from creation to completion or
// failure. It is the aggregate root that owns the status state machine.
//
// Delivery maintains these invariants:
//   - Status transitions follow the table in Status.AllowedTransitions
//   - Terminal statuses (DELIVERED, FAILED) have no outgoing transitions
//   - The completion timestamp is set exactly once, when the delivery
//     reaches DELIVERED
//   - A rider is assigned exactly when the status is past CREATED
//   - Can only be created through NewDelivery or RestoreDelivery
//
// The struct uses private fields to keep mutation behind the validated
// methods AssignRider and TransitionTo.
type Delivery struct {
	// id is the unique identifier for the delivery
	id kernel.UUID

	// businessID references the business the package belongs to
	businessID kernel.UUID

	// pickup is where the rider collects the package
	pickup Contact

	// dropoff is where the rider hands the package over
	dropoff Contact

	// packageDescription is an optional free-text description
	packageDescription string

	// createdBy is the actor who registered the delivery
	createdBy kernel.UUID

	// riderID is the assigned rider's ID (nil until Assigned)
	riderID *kernel.UUID

	// status is the current state in the delivery lifecycle
	status Status

	// createdAt is set once at construction
	createdAt time.Time

	// deliveredAt is set exactly once, when status becomes Delivered
	deliveredAt *time.Time

	// isConstructed ensures the delivery was created via a constructor
	isConstructed bool
}

// NewDelivery creates a new Delivery in Created status with no rider
// assigned. This is the only way to create a fresh delivery, ensuring the
// business invariants hold from the start.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - businessID: owning business (must be a valid UUID)
//   - pickup, dropoff: fully specified contacts
//   - packageDescription: optional free text, may be empty
//   - createdBy: the actor registering the delivery
//
// Example:
//
//	pickup, _ := delivery.NewContact("12 Uhuru St", "Asha", "+255700000001")
//	dropoff, _ := delivery.NewContact("3 Bagamoyo Rd", "Juma", "+255700000002")
//	d, err := delivery.NewDelivery(kernel.NewUUID(), businessID, pickup, dropoff, "documents", staffID)
func NewDelivery(
	id kernel.UUID,
	businessID kernel.UUID,
	pickup Contact,
	dropoff Contact,
	packageDescription string,
	createdBy kernel.UUID,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:                 id,
		businessID:         businessID,
		pickup:             pickup,
		dropoff:            dropoff,
		packageDescription: packageDescription,
		createdBy:          createdBy,
		status:             Created,
		createdAt:          time.Now().UTC(),
		isConstructed:      true,
	}, nil
}

// RestoreDelivery reconstructs a Delivery from persistence.
// Unlike NewDelivery it accepts any valid status and the stored timestamps,
// and checks the status/rider consistency rule before handing the aggregate
// back to the caller.
func RestoreDelivery(
	id kernel.UUID,
	businessID kernel.UUID,
	pickup Contact,
	dropoff Contact,
	packageDescription string,
	createdBy kernel.UUID,
	riderID *kernel.UUID,
	status Status,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		pickup.Validate(),
		dropoff.Validate(),
		createdBy.Validate(),
		status.Validate(),
		status.ValidateCanHaveRider(riderID != nil),
	); err != nil {
		return nil, err
	}

	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Delivery{
		id:                 id,
		businessID:         businessID,
		pickup:             pickup,
		dropoff:            dropoff,
		packageDescription: packageDescription,
		createdBy:          createdBy,
		riderID:            riderID,
		status:             status,
		createdAt:          createdAt,
		deliveredAt:        deliveredAt,
		isConstructed:      true,
	}, nil
}

// Validate ensures the Delivery instance was properly constructed.
// Returns ErrDeliveryIsNotConstructed for zero-value instances.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// BusinessID returns the owning business identifier.
func (d *Delivery) BusinessID() kernel.UUID {
	return d.businessID
}

// Pickup returns the pickup contact.
func (d *Delivery) Pickup() Contact {
	return d.pickup
}

// Dropoff returns the dropoff contact.
func (d *Delivery) Dropoff() Contact {
	return d.dropoff
}

// PackageDescription returns the optional package description.
func (d *Delivery) PackageDescription() string {
	return d.packageDescription
}

// CreatedBy returns the actor who registered the delivery.
func (d *Delivery) CreatedBy() kernel.UUID {
	return d.createdBy
}

// Rider returns the assigned rider's ID, or nil if none is assigned.
func (d *Delivery) Rider() *kernel.UUID {
	return d.riderID
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// DeliveredAt returns the completion timestamp, or nil while the delivery
// has not reached Delivered.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// AssignRider assigns the delivery to a rider and forces the status to
// Assigned, even if the delivery is already past Assigned. Reassigning a
// delivery mid-flight deliberately resets its progress; staff use this to
// hand a stuck delivery to another rider.
//
// Terminal deliveries cannot be reassigned; the attempt fails with an
// IllegalTransitionError whose allowed set is empty.
func (d *Delivery) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	if d.status.IsTerminal() {
		return NewIllegalTransitionError(d.status, Assigned)
	}

	d.riderID = &riderID
	d.status = Assigned
	return nil
}

// TransitionTo moves the delivery to the target status, enforcing the
// transition table against the current status. When the target is
// Delivered, the completion timestamp is set; it is never overwritten.
//
// Returns:
//   - a ValueIsInvalidError if target is not a valid status
//   - an IllegalTransitionError (carrying the allowed targets) if target is
//     not reachable from the current status
func (d *Delivery) TransitionTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if !d.status.CanTransitionTo(target) {
		return NewIllegalTransitionError(d.status, target)
	}

	d.status = target
	if target == Delivered && d.deliveredAt == nil {
		now := time.Now().UTC()
		d.deliveredAt = &now
	}
	return nil
}
