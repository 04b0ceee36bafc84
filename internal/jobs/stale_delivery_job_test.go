package jobs

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"couriertrack/internal/adapters/out/memory"
	"couriertrack/internal/core/domain/model/delivery"
	"couriertrack/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoredDelivery(
	t *testing.T,
	status delivery.Status,
	createdAt time.Time,
) *delivery.Delivery {
	t.Helper()

	pickup, err := delivery.NewContact("12 Uhuru St, Kariakoo", "Mwambao Traders", "+255713111222")
	require.NoError(t, err)
	dropoff, err := delivery.NewContact("7 Mwai Kibaki Rd, Mikocheni", "Neema Joseph", "+255754333444")
	require.NoError(t, err)

	var riderID *kernel.UUID
	if status != delivery.Created {
		id := kernel.NewUUID()
		riderID = &id
	}

	d, err := delivery.RestoreDelivery(
		kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "spare parts",
		kernel.NewUUID(), riderID, status, createdAt, nil,
	)
	require.NoError(t, err)
	return d
}

func TestStaleDeliveryJob_Scan(t *testing.T) {
	ctx := t.Context()

	deliveries := memory.NewDeliveryRepo()
	events := memory.NewEventRepo()
	factory := memory.NewUnitOfWorkFactory(deliveries, events, memory.NewActorRepo())

	now := time.Now().UTC()

	// Idle since creation, no events: stale
	stale := restoredDelivery(t, delivery.Assigned, now.Add(-2*time.Hour))
	require.NoError(t, deliveries.Add(ctx, stale))

	// Created long ago but with a recent event: still moving
	active := restoredDelivery(t, delivery.PickedUp, now.Add(-2*time.Hour))
	require.NoError(t, deliveries.Add(ctx, active))
	recent, err := delivery.RestoreEvent(
		kernel.NewUUID(), active.ID(), delivery.PickedUp, "Collected", kernel.NewUUID(),
		now.Add(-5*time.Minute),
	)
	require.NoError(t, err)
	require.NoError(t, events.Append(ctx, recent))

	// Fresh delivery: not stale
	fresh := restoredDelivery(t, delivery.Created, now.Add(-time.Minute))
	require.NoError(t, deliveries.Add(ctx, fresh))

	// Terminal delivery older than the threshold: out of scope
	done := restoredDelivery(t, delivery.Failed, now.Add(-3*time.Hour))
	require.NoError(t, deliveries.Add(ctx, done))

	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	job := NewStaleDeliveryJob(factory, 30*time.Minute, logger)

	require.NoError(t, job.scan(ctx))

	output := logs.String()
	assert.Contains(t, output, "Delivery has stalled")
	assert.Contains(t, output, stale.ID().String())
	assert.NotContains(t, output, active.ID().String())
	assert.NotContains(t, output, fresh.ID().String())
	assert.NotContains(t, output, done.ID().String())
}

func TestStaleDeliveryJob_Scan_EmptyStores(t *testing.T) {
	ctx := t.Context()

	factory := memory.NewUnitOfWorkFactory(
		memory.NewDeliveryRepo(), memory.NewEventRepo(), memory.NewActorRepo(),
	)

	var logs bytes.Buffer
	job := NewStaleDeliveryJob(factory, 30*time.Minute, slog.New(slog.NewJSONHandler(&logs, nil)))

	require.NoError(t, job.scan(ctx))
	assert.NotContains(t, logs.String(), "Delivery has stalled")
}

func TestStaleDeliveryJob_StartStop(t *testing.T) {
	factory := memory.NewUnitOfWorkFactory(
		memory.NewDeliveryRepo(), memory.NewEventRepo(), memory.NewActorRepo(),
	)

	var logs bytes.Buffer
	job := NewStaleDeliveryJob(factory, 30*time.Minute, slog.New(slog.NewJSONHandler(&logs, nil)))

	require.NoError(t, job.Start())
	job.Stop()

	assert.Contains(t, logs.String(), "Stale delivery job started")
	assert.Contains(t, logs.String(), "Stale delivery job stopped")
}
