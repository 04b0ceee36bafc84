package delivery_test

import (
	"testing"
	"time"

	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContacts(t *testing.T) (delivery.Contact, delivery.Contact) {
	t.Helper()

	pickup, err := delivery.NewContact("12 Uhuru St, Kariakoo", "Mwambao Traders", "+255713111222")
	require.NoError(t, err)
	dropoff, err := delivery.NewContact("7 Mwai Kibaki Rd, Mikocheni", "Neema Joseph", "+255754333444")
	require.NoError(t, err)
	return pickup, dropoff
}

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	pickup, dropoff := validContacts(t)
	d, err := delivery.NewDelivery(
		kernel.NewUUID(),
		kernel.NewUUID(),
		pickup,
		dropoff,
		"Two boxes of spare parts",
		kernel.NewUUID(),
	)
	require.NoError(t, err)
	return d
}

// deliveryInStatus walks a fresh delivery to the wanted status through the
// legal transition chain.
func deliveryInStatus(t *testing.T, status delivery.Status) *delivery.Delivery {
	t.Helper()

	d := newTestDelivery(t)
	if status == delivery.Created {
		return d
	}

	require.NoError(t, d.AssignRider(kernel.NewUUID()))
	chain := map[delivery.Status][]delivery.Status{
		delivery.Assigned:  {},
		delivery.PickedUp:  {delivery.PickedUp},
		delivery.InTransit: {delivery.PickedUp, delivery.InTransit},
		delivery.Delivered: {delivery.PickedUp, delivery.InTransit, delivery.Delivered},
		delivery.Failed:    {delivery.PickedUp, delivery.Failed},
	}
	for _, step := range chain[status] {
		require.NoError(t, d.TransitionTo(step))
	}
	return d
}

func TestNewDelivery(t *testing.T) {
	pickup, dropoff := validContacts(t)
	validID := kernel.NewUUID()
	validBusiness := kernel.NewUUID()
	validCreator := kernel.NewUUID()

	t.Run("should create valid delivery with all valid parameters", func(t *testing.T) {
		d, err := delivery.NewDelivery(validID, validBusiness, pickup, dropoff, "documents", validCreator)

		require.NoError(t, err)
		assert.NotNil(t, d)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(validID))
		assert.True(t, d.BusinessID().IsEqual(validBusiness))
		assert.True(t, d.CreatedBy().IsEqual(validCreator))
		assert.Equal(t, delivery.Created, d.Status())
		assert.Equal(t, "documents", d.PackageDescription())
		assert.Nil(t, d.Rider())
		assert.Nil(t, d.DeliveredAt())
		assert.False(t, d.CreatedAt().IsZero())
	})

	t.Run("should allow empty package description", func(t *testing.T) {
		d, err := delivery.NewDelivery(validID, validBusiness, pickup, dropoff, "", validCreator)

		require.NoError(t, err)
		assert.Empty(t, d.PackageDescription())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		d, err := delivery.NewDelivery(invalidID, validBusiness, pickup, dropoff, "", validCreator)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with unconstructed contacts", func(t *testing.T) {
		var zeroContact delivery.Contact

		d, err := delivery.NewDelivery(validID, validBusiness, zeroContact, dropoff, "", validCreator)

		require.Error(t, err)
		assert.Nil(t, d)
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		var zeroContact delivery.Contact

		d, err := delivery.NewDelivery(invalidID, validBusiness, zeroContact, zeroContact, "", validCreator)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestRestoreDelivery(t *testing.T) {
	pickup, dropoff := validContacts(t)
	createdAt := time.Now().UTC().Add(-time.Hour)

	t.Run("should restore a Created delivery without a rider", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "docs",
			kernel.NewUUID(), nil, delivery.Created, createdAt, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.Created, d.Status())
		assert.Equal(t, createdAt, d.CreatedAt())
	})

	t.Run("should restore an active delivery with a rider", func(t *testing.T) {
		rider := kernel.NewUUID()

		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
			kernel.NewUUID(), &rider, delivery.InTransit, createdAt, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.InTransit, d.Status())
		require.NotNil(t, d.Rider())
		assert.True(t, d.Rider().IsEqual(rider))
	})

	t.Run("should restore a Delivered delivery with completion timestamp", func(t *testing.T) {
		rider := kernel.NewUUID()
		deliveredAt := createdAt.Add(30 * time.Minute)

		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
			kernel.NewUUID(), &rider, delivery.Delivered, createdAt, &deliveredAt,
		)

		require.NoError(t, err)
		require.NotNil(t, d.DeliveredAt())
		assert.Equal(t, deliveredAt, *d.DeliveredAt())
	})

	t.Run("should reject Created with a rider", func(t *testing.T) {
		rider := kernel.NewUUID()

		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
			kernel.NewUUID(), &rider, delivery.Created, createdAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject post-assignment status without a rider", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
			kernel.NewUUID(), nil, delivery.PickedUp, createdAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
			kernel.NewUUID(), nil, delivery.Unknown, createdAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, d)
	})

	t.Run("should reject zero createdAt", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
			kernel.NewUUID(), nil, delivery.Created, time.Time{}, nil,
		)

		require.Error(t, err)
		assert.Nil(t, d)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed delivery", func(t *testing.T) {
		d := newTestDelivery(t)

		require.NoError(t, d.Validate())
	})

	t.Run("should fail validation for nil delivery", func(t *testing.T) {
		var d *delivery.Delivery

		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, err)
	})

	t.Run("should fail validation for zero-value delivery", func(t *testing.T) {
		var d delivery.Delivery

		err := d.Validate()

		require.Error(t, err)
		assert.Equal(t, delivery.ErrDeliveryIsNotConstructed, err)
	})
}

func TestDelivery_IsEqual(t *testing.T) {
	t.Run("should compare by identifier", func(t *testing.T) {
		d1 := newTestDelivery(t)
		d2 := newTestDelivery(t)

		assert.True(t, d1.IsEqual(d1))
		assert.False(t, d1.IsEqual(d2))
		assert.False(t, d1.IsEqual(nil))
	})
}

func TestDelivery_AssignRider(t *testing.T) {
	t.Run("should assign rider to fresh delivery", func(t *testing.T) {
		d := newTestDelivery(t)
		rider := kernel.NewUUID()

		err := d.AssignRider(rider)

		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, d.Status())
		require.NotNil(t, d.Rider())
		assert.True(t, d.Rider().IsEqual(rider))
	})

	t.Run("should replace rider on reassignment", func(t *testing.T) {
		d := newTestDelivery(t)
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		require.NoError(t, d.AssignRider(first))
		require.NoError(t, d.AssignRider(second))

		assert.Equal(t, delivery.Assigned, d.Status())
		assert.True(t, d.Rider().IsEqual(second))
	})

	t.Run("should rewind in-flight delivery back to Assigned", func(t *testing.T) {
		// Reassignment resets progress on purpose: handing a stuck
		// delivery to a new rider restarts it from Assigned.
		for _, status := range []delivery.Status{delivery.PickedUp, delivery.InTransit} {
			d := deliveryInStatus(t, status)
			replacement := kernel.NewUUID()

			err := d.AssignRider(replacement)

			require.NoError(t, err, "reassignment from %s", status)
			assert.Equal(t, delivery.Assigned, d.Status())
			assert.True(t, d.Rider().IsEqual(replacement))
		}
	})

	t.Run("should reject assignment on terminal deliveries", func(t *testing.T) {
		for _, status := range []delivery.Status{delivery.Delivered, delivery.Failed} {
			d := deliveryInStatus(t, status)
			previousRider := *d.Rider()

			err := d.AssignRider(kernel.NewUUID())

			require.Error(t, err, "assignment on %s", status)
			assert.ErrorIs(t, err, delivery.ErrIllegalTransition)

			var illegal *delivery.IllegalTransitionError
			require.ErrorAs(t, err, &illegal)
			assert.Equal(t, status, illegal.From)
			assert.Equal(t, delivery.Assigned, illegal.To)
			assert.Empty(t, illegal.Allowed)

			// Nothing changed
			assert.Equal(t, status, d.Status())
			assert.True(t, d.Rider().IsEqual(previousRider))
		}
	})

	t.Run("should reject invalid rider ID", func(t *testing.T) {
		d := newTestDelivery(t)
		var invalidRider kernel.UUID

		err := d.AssignRider(invalidRider)

		require.Error(t, err)
		assert.Equal(t, delivery.Created, d.Status())
		assert.Nil(t, d.Rider())
	})
}

func TestDelivery_TransitionTo(t *testing.T) {
	t.Run("should walk the happy path to Delivered", func(t *testing.T) {
		d := newTestDelivery(t)
		require.NoError(t, d.AssignRider(kernel.NewUUID()))

		for _, target := range []delivery.Status{delivery.PickedUp, delivery.InTransit, delivery.Delivered} {
			require.NoError(t, d.TransitionTo(target))
			assert.Equal(t, target, d.Status())
		}

		assert.NotNil(t, d.DeliveredAt())
	})

	t.Run("should allow failing from any post-assignment active status", func(t *testing.T) {
		for _, status := range []delivery.Status{delivery.Assigned, delivery.PickedUp, delivery.InTransit} {
			d := deliveryInStatus(t, status)

			err := d.TransitionTo(delivery.Failed)

			require.NoError(t, err, "failing from %s", status)
			assert.Equal(t, delivery.Failed, d.Status())
			assert.Nil(t, d.DeliveredAt())
		}
	})

	t.Run("should set completion timestamp only on Delivered", func(t *testing.T) {
		d := deliveryInStatus(t, delivery.InTransit)
		assert.Nil(t, d.DeliveredAt())

		before := time.Now().UTC()
		require.NoError(t, d.TransitionTo(delivery.Delivered))
		after := time.Now().UTC()

		require.NotNil(t, d.DeliveredAt())
		assert.False(t, d.DeliveredAt().Before(before))
		assert.False(t, d.DeliveredAt().After(after))
	})

	t.Run("should reject illegal transitions and carry allowed targets", func(t *testing.T) {
		d := deliveryInStatus(t, delivery.Assigned)

		err := d.TransitionTo(delivery.Delivered)

		require.Error(t, err)
		assert.ErrorIs(t, err, delivery.ErrIllegalTransition)

		var illegal *delivery.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Equal(t, delivery.Assigned, illegal.From)
		assert.Equal(t, delivery.Delivered, illegal.To)
		assert.ElementsMatch(t, []delivery.Status{delivery.PickedUp, delivery.Failed}, illegal.Allowed)
		assert.Contains(t, err.Error(), "PICKED_UP")
		assert.Contains(t, err.Error(), "FAILED")

		// State unchanged after rejection
		assert.Equal(t, delivery.Assigned, d.Status())
	})

	t.Run("should reject transitions out of terminal statuses", func(t *testing.T) {
		d := deliveryInStatus(t, delivery.Delivered)

		err := d.TransitionTo(delivery.Failed)

		require.Error(t, err)
		var illegal *delivery.IllegalTransitionError
		require.ErrorAs(t, err, &illegal)
		assert.Empty(t, illegal.Allowed)
		assert.Contains(t, err.Error(), "terminal")
	})

	t.Run("should reject invalid target statuses", func(t *testing.T) {
		d := newTestDelivery(t)

		err := d.TransitionTo(delivery.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, delivery.Created, d.Status())
	})

	t.Run("should reject self transition", func(t *testing.T) {
		d := deliveryInStatus(t, delivery.PickedUp)

		err := d.TransitionTo(delivery.PickedUp)

		require.Error(t, err)
		assert.ErrorIs(t, err, delivery.ErrIllegalTransition)
	})
}
