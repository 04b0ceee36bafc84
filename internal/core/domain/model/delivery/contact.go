package delivery

import (
	"errors"

	"couriertrack/internal/pkg/errs"
	"couriertrack/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a Contact was not created
// through the NewContact factory function.
var ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")

// Contact is a value object describing one endpoint of a delivery: where to
// pick the package up or where to drop it off, and who answers the phone
// there. Both endpoints of a delivery are required in full, mirroring the
// dispatch form staff fill in.
type Contact struct {
	address string
	name    string
	phone   string

	guard guard.ConstructorGuard
}

// NewContact creates a Contact with all fields required.
// The phone is kept verbatim; number normalization happens upstream.
func NewContact(address, name, phone string) (Contact, error) {
	if address == "" {
		return Contact{}, errs.NewValueIsRequiredError("address")
	}
	if name == "" {
		return Contact{}, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return Contact{}, errs.NewValueIsRequiredError("phone")
	}

	return Contact{
		address: address,
		name:    name,
		phone:   phone,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Contact was built through NewContact.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// Address returns the street address of the contact.
func (c Contact) Address() string {
	return c.address
}

// Name returns the contact person's name.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the contact person's phone number.
func (c Contact) Phone() string {
	return c.phone
}
