package memory_test

import (
	"testing"

	"couriertrack/internal/adapters/out/memory"
	"couriertrack/internal/core/application/usecases/commands"
	"couriertrack/internal/core/domain/model/actor"
	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uowFactoryAdapter struct {
	inner ports.UnitOfWorkFactory
}

func (a uowFactoryAdapter) Create() commands.UoW {
	return a.inner.Create()
}

// The in-memory stores back the full command stack, so one delivery can be
// walked through its whole lifecycle without a database.
func TestUnitOfWork_DeliveryLifecycle(t *testing.T) {
	ctx := t.Context()

	deliveries := memory.NewDeliveryRepo()
	events := memory.NewEventRepo()
	actors := memory.NewActorRepo()
	factory := uowFactoryAdapter{inner: memory.NewUnitOfWorkFactory(deliveries, events, actors)}

	staffID := kernel.NewUUID()
	riderID := kernel.NewUUID()
	staff, err := actor.NewActor(staffID, "Amina Said", "+255784000999", actor.RoleStaff, true)
	require.NoError(t, err)
	rider, err := actor.NewActor(riderID, "Juma Hassan", "+255713555666", actor.RoleRider, true)
	require.NoError(t, err)
	actors.Seed(staff, rider)

	pickup, err := delivery.NewContact("12 Uhuru St, Kariakoo", "Mwambao Traders", "+255713111222")
	require.NoError(t, err)
	dropoff, err := delivery.NewContact("7 Mwai Kibaki Rd, Mikocheni", "Neema Joseph", "+255754333444")
	require.NoError(t, err)

	// Register
	deliveryID := kernel.NewUUID()
	createCmd, err := commands.NewCreateDeliveryCommand(
		deliveryID, kernel.NewUUID(), pickup, dropoff, "spare parts", staffID,
	)
	require.NoError(t, err)

	created, err := commands.NewCreateDeliveryCommandHandler(factory).Handle(ctx, createCmd)
	require.NoError(t, err)
	assert.Equal(t, delivery.Created, created.Status())

	// Assign
	assignCmd, err := commands.NewAssignRiderCommand(deliveryID, staffID, riderID)
	require.NoError(t, err)

	assigned, err := commands.NewAssignRiderCommandHandler(factory).Handle(ctx, assignCmd)
	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, assigned.Status())

	// Rider works the delivery to completion
	statusHandler := commands.NewChangeDeliveryStatusCommandHandler(factory)
	for _, target := range []delivery.Status{delivery.PickedUp, delivery.InTransit, delivery.Delivered} {
		cmd, err := commands.NewChangeDeliveryStatusCommand(deliveryID, riderID, target, "")
		require.NoError(t, err)

		updated, err := statusHandler.Handle(ctx, cmd)
		require.NoError(t, err, "transition to %s", target)
		assert.Equal(t, target, updated.Status())
	}

	final, err := deliveries.Get(ctx, deliveryID)
	require.NoError(t, err)
	assert.Equal(t, delivery.Delivered, final.Status())
	assert.NotNil(t, final.DeliveredAt())

	// Full audit trail in order
	history, err := events.ListByDelivery(ctx, deliveryID)
	require.NoError(t, err)
	require.Len(t, history, 5)
	wantStatuses := []delivery.Status{
		delivery.Created, delivery.Assigned, delivery.PickedUp, delivery.InTransit, delivery.Delivered,
	}
	for i, event := range history {
		assert.Equal(t, wantStatuses[i], event.Status(), "event %d", i)
	}
	assert.Equal(t, "Delivery created", history[0].Note())
	assert.Equal(t, "Assigned to rider Juma Hassan", history[1].Note())
}

func TestUnitOfWork_TransactionLifecycleIsNoOp(t *testing.T) {
	ctx := t.Context()

	factory := memory.NewUnitOfWorkFactory(
		memory.NewDeliveryRepo(), memory.NewEventRepo(), memory.NewActorRepo(),
	)
	uow := factory.Create()

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Commit(ctx))
	require.NoError(t, uow.Rollback(ctx))

	assert.NotNil(t, uow.DeliveryRepository())
	assert.NotNil(t, uow.EventRepository())
	assert.NotNil(t, uow.ActorRepository())
}
