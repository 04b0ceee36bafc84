package actor

import (
	"errors"
	"fmt"

	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not
// created through the NewActor factory function.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the capability class of an actor.
type Role string

// List of possible actor roles.
const (
	RoleAdmin          Role = "ADMIN"
	RoleStaff          Role = "STAFF"
	RoleRider          Role = "RIDER"
	RoleBusinessClient Role = "BUSINESS_CLIENT"
)

var allowedRoles = [...]Role{
	RoleAdmin, RoleStaff, RoleRider, RoleBusinessClient,
}

// Valid checks if the Role is a member of the allowed set.
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Actor is the identity attempting an operation: a rider, staff member,
// admin, or business client. The lifecycle manager consults the actor's
// role and active flag before accepting any mutation.
type Actor struct {
	id     kernel.UUID
	name   string
	phone  string
	role   Role
	active bool

	isConstructed bool
}

// NewActor creates an Actor with a validated identity and role.
// Name and phone may be empty for system accounts; role must be valid.
func NewActor(id kernel.UUID, name, phone string, role Role, active bool) (*Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%q is not a valid role", string(role)),
		)
	}

	return &Actor{
		id:            id,
		name:          name,
		phone:         phone,
		role:          role,
		active:        active,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor instance was properly constructed.
func (a *Actor) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the actor's unique identifier.
func (a *Actor) ID() kernel.UUID {
	return a.id
}

// Name returns the actor's display name.
func (a *Actor) Name() string {
	return a.name
}

// Phone returns the actor's phone number.
func (a *Actor) Phone() string {
	return a.phone
}

// Role returns the actor's capability class.
func (a *Actor) Role() Role {
	return a.role
}

// Active reports whether the account is currently enabled.
func (a *Actor) Active() bool {
	return a.active
}

// IsRider reports whether the actor holds the rider capability.
func (a *Actor) IsRider() bool {
	return a.role == RoleRider
}

// CanAssignRiders reports whether the actor may assign riders to
// deliveries. Staff and admins can; riders and business clients cannot.
func (a *Actor) CanAssignRiders() bool {
	return a.role == RoleStaff || a.role == RoleAdmin
}

// CanCreateDeliveries reports whether the actor may register new
// deliveries for a business.
func (a *Actor) CanCreateDeliveries() bool {
	return a.role == RoleStaff || a.role == RoleAdmin || a.role == RoleBusinessClient
}
