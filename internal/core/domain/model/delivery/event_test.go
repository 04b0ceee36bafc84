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

func TestNewEvent(t *testing.T) {
	t.Run("should create event with explicit note", func(t *testing.T) {
		id := kernel.NewUUID()
		deliveryID := kernel.NewUUID()
		createdBy := kernel.NewUUID()

		event, err := delivery.NewEvent(id, deliveryID, delivery.PickedUp, "Collected at the gate", createdBy)

		require.NoError(t, err)
		require.NoError(t, event.Validate())
		assert.True(t, event.ID().IsEqual(id))
		assert.True(t, event.DeliveryID().IsEqual(deliveryID))
		assert.True(t, event.CreatedBy().IsEqual(createdBy))
		assert.Equal(t, delivery.PickedUp, event.Status())
		assert.Equal(t, "Collected at the gate", event.Note())
		assert.False(t, event.CreatedAt().IsZero())
	})

	t.Run("should synthesize note when empty", func(t *testing.T) {
		event, err := delivery.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(), delivery.Delivered, "", kernel.NewUUID(),
		)

		require.NoError(t, err)
		assert.Equal(t, "Status updated to DELIVERED", event.Note())
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID

		event, err := delivery.NewEvent(
			invalidID, kernel.NewUUID(), delivery.Created, "", kernel.NewUUID(),
		)

		require.Error(t, err)
		assert.Nil(t, event)
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		event, err := delivery.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(), delivery.Unknown, "", kernel.NewUUID(),
		)

		require.Error(t, err)
		assert.Nil(t, event)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDefaultNote(t *testing.T) {
	t.Run("should render the wire status name", func(t *testing.T) {
		assert.Equal(t, "Status updated to ASSIGNED", delivery.DefaultNote(delivery.Assigned))
		assert.Equal(t, "Status updated to IN_TRANSIT", delivery.DefaultNote(delivery.InTransit))
	})
}

func TestRestoreEvent(t *testing.T) {
	createdAt := time.Now().UTC().Add(-10 * time.Minute)

	t.Run("should restore event from persistence", func(t *testing.T) {
		event, err := delivery.RestoreEvent(
			kernel.NewUUID(), kernel.NewUUID(), delivery.Failed, "Receiver unreachable", kernel.NewUUID(), createdAt,
		)

		require.NoError(t, err)
		assert.Equal(t, delivery.Failed, event.Status())
		assert.Equal(t, "Receiver unreachable", event.Note())
		assert.Equal(t, createdAt, event.CreatedAt())
	})

	t.Run("should require note", func(t *testing.T) {
		event, err := delivery.RestoreEvent(
			kernel.NewUUID(), kernel.NewUUID(), delivery.Failed, "", kernel.NewUUID(), createdAt,
		)

		require.Error(t, err)
		assert.Nil(t, event)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "note")
	})

	t.Run("should require createdAt", func(t *testing.T) {
		event, err := delivery.RestoreEvent(
			kernel.NewUUID(), kernel.NewUUID(), delivery.Failed, "Receiver unreachable", kernel.NewUUID(), time.Time{},
		)

		require.Error(t, err)
		assert.Nil(t, event)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestEvent_Validate(t *testing.T) {
	t.Run("should reject nil and zero-value events", func(t *testing.T) {
		var nilEvent *delivery.Event
		assert.Equal(t, delivery.ErrEventIsNotConstructed, nilEvent.Validate())

		var zeroEvent delivery.Event
		assert.Equal(t, delivery.ErrEventIsNotConstructed, zeroEvent.Validate())
	})
}
