package memory_test

import (
	"sync"
	"testing"

	"couriertrack/internal/adapters/out/memory"
	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"
	"couriertrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	pickup, err := delivery.NewContact("12 Uhuru St, Kariakoo", "Mwambao Traders", "+255713111222")
	require.NoError(t, err)
	dropoff, err := delivery.NewContact("7 Mwai Kibaki Rd, Mikocheni", "Neema Joseph", "+255754333444")
	require.NoError(t, err)

	d, err := delivery.NewDelivery(
		kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "spare parts", kernel.NewUUID(),
	)
	require.NoError(t, err)
	return d
}

func TestDeliveryRepo_AddAndGet(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)

	require.NoError(t, repo.Add(ctx, d))

	got, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.True(t, got.IsEqual(d))
	assert.Equal(t, delivery.Created, got.Status())
}

func TestDeliveryRepo_Add_Duplicate(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)

	require.NoError(t, repo.Add(ctx, d))
	err := repo.Add(ctx, d)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDeliveryRepo_Get_NotFound(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()

	_, err := repo.Get(ctx, kernel.NewUUID())

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeliveryRepo_Get_ReturnsDetachedCopy(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)
	require.NoError(t, repo.Add(ctx, d))

	first, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	require.NoError(t, first.AssignRider(kernel.NewUUID()))

	// Mutating the returned aggregate must not leak into the store
	second, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.Created, second.Status())
	assert.Nil(t, second.Rider())
}

func TestDeliveryRepo_Add_StoresDetachedCopy(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)
	require.NoError(t, repo.Add(ctx, d))

	// The caller keeps its pointer and mutates it; the store must still
	// hold the state as of Add, so the compare-and-swap from the saved
	// status wins instead of conflicting with the caller's own mutation.
	require.NoError(t, d.AssignRider(kernel.NewUUID()))

	got, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.Created, got.Status())
	assert.Nil(t, got.Rider())

	require.NoError(t, repo.UpdateIfStatus(ctx, d, delivery.Created))
}

func TestDeliveryRepo_Update_StoresDetachedCopy(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)
	require.NoError(t, repo.Add(ctx, d))

	require.NoError(t, d.AssignRider(kernel.NewUUID()))
	require.NoError(t, repo.Update(ctx, d))

	require.NoError(t, d.TransitionTo(delivery.PickedUp))

	got, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, got.Status())
}

func TestDeliveryRepo_Update(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)
	require.NoError(t, repo.Add(ctx, d))

	require.NoError(t, d.AssignRider(kernel.NewUUID()))
	require.NoError(t, repo.Update(ctx, d))

	got, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, got.Status())
}

func TestDeliveryRepo_Update_NotFound(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	d := newTestDelivery(t)

	err := repo.Update(ctx, d)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestDeliveryRepo_UpdateIfStatus(t *testing.T) {
	ctx := t.Context()

	t.Run("should apply update when expected status matches", func(t *testing.T) {
		repo := memory.NewDeliveryRepo()
		d := newTestDelivery(t)
		require.NoError(t, repo.Add(ctx, d))

		require.NoError(t, d.AssignRider(kernel.NewUUID()))
		require.NoError(t, repo.UpdateIfStatus(ctx, d, delivery.Created))

		got, err := repo.Get(ctx, d.ID())
		require.NoError(t, err)
		assert.Equal(t, delivery.Assigned, got.Status())
	})

	t.Run("should reject update when expected status is stale", func(t *testing.T) {
		repo := memory.NewDeliveryRepo()
		d := newTestDelivery(t)
		require.NoError(t, repo.Add(ctx, d))

		require.NoError(t, d.AssignRider(kernel.NewUUID()))
		require.NoError(t, repo.UpdateIfStatus(ctx, d, delivery.Created))

		// Replaying the same compare-and-swap must lose
		err := repo.UpdateIfStatus(ctx, d, delivery.Created)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrVersionConflict)
	})

	t.Run("should report missing delivery as not found", func(t *testing.T) {
		repo := memory.NewDeliveryRepo()
		d := newTestDelivery(t)

		err := repo.UpdateIfStatus(ctx, d, delivery.Created)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDeliveryRepo_UpdateIfStatus_ConcurrentTransitions(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()
	riderID := kernel.NewUUID()

	d := newTestDelivery(t)
	require.NoError(t, d.AssignRider(riderID))
	require.NoError(t, repo.Add(ctx, d))

	// Two racing transitions from the same ASSIGNED snapshot: the rider
	// picks the package up while staff marks the delivery failed. Both
	// read before either writes, so exactly one compare-and-swap may win.
	targets := []delivery.Status{delivery.PickedUp, delivery.Failed}
	snapshots := make([]*delivery.Delivery, len(targets))
	for i, target := range targets {
		aggregate, err := repo.Get(ctx, d.ID())
		require.NoError(t, err)
		require.NoError(t, aggregate.TransitionTo(target))
		snapshots[i] = aggregate
	}

	var wg sync.WaitGroup
	results := make([]error, len(targets))

	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = repo.UpdateIfStatus(ctx, snapshots[i], delivery.Assigned)
		}(i)
	}
	wg.Wait()

	winners := 0
	for i, err := range results {
		if err == nil {
			winners++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrVersionConflict, "loser %d", i)
	}
	assert.Equal(t, 1, winners)

	got, err := repo.Get(ctx, d.ID())
	require.NoError(t, err)
	assert.Contains(t, []delivery.Status{delivery.PickedUp, delivery.Failed}, got.Status())
}

func TestDeliveryRepo_GetAllInStatus(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewDeliveryRepo()

	first := newTestDelivery(t)
	second := newTestDelivery(t)
	third := newTestDelivery(t)
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))
	require.NoError(t, repo.Add(ctx, third))

	require.NoError(t, third.AssignRider(kernel.NewUUID()))
	require.NoError(t, repo.Update(ctx, third))

	created, err := repo.GetAllInStatus(ctx, delivery.Created)
	require.NoError(t, err)
	assert.Len(t, created, 2)

	assigned, err := repo.GetAllInStatus(ctx, delivery.Assigned)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.True(t, assigned[0].IsEqual(third))

	empty, err := repo.GetAllInStatus(ctx, delivery.Delivered)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
