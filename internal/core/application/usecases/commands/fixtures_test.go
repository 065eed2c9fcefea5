package commands_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/domain/events"
	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"

	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	clock = kernel.FixedClock{At: now}
)

func ptr[T any](v T) *T {
	return &v
}

func eventFactory() events.Factory {
	return events.NewFactory(kernel.RandomIDGenerator{}, clock)
}

func envelope(t *testing.T) commands.Envelope {
	t.Helper()
	correlationID := kernel.NewUUID()
	env, err := commands.NewEnvelope(kernel.NewUUID(), "shift-lead@mill", &correlationID)
	require.NoError(t, err)
	return env
}

func mixOrderParams() mixorder.Params {
	return mixorder.Params{
		OrderNumber: "MO-2026-0100",
		Type:        mixorder.Plant,
		RecipeID:    kernel.NewUUID(),
		TargetQtyKg: 1800,
		PlannedAt:   now.Add(4 * time.Hour),
	}
}

// mixOrderIn builds an order of the envelope's tenant and walks it through the given transitions.
func mixOrderIn(t *testing.T, env commands.Envelope, transitions ...func(mixorder.MixOrder) (mixorder.MixOrder, error)) mixorder.MixOrder {
	t.Helper()
	p := mixOrderParams()
	p.TenantID = env.TenantID()
	p.CreatedBy = "planner@mill"
	o, err := mixorder.NewMixOrder(kernel.RandomIDGenerator{}, kernel.FixedClock{At: now.Add(-time.Hour)}, p)
	require.NoError(t, err)
	for _, transition := range transitions {
		o, err = transition(o)
		require.NoError(t, err)
	}
	return o
}

func batchParams(env commands.Envelope) batch.Params {
	return batch.Params{
		TenantID:      env.TenantID(),
		BatchNumber:   "B-2026-0100",
		MixOrderID:    kernel.NewUUID(),
		ProducedQtyKg: 1000,
		StartAt:       now.Add(-2 * time.Hour),
	}
}

func batchIn(t *testing.T, env commands.Envelope, completed bool) batch.Batch {
	t.Helper()
	in, err := batch.NewInput(kernel.NewUUID(), 100, 100)
	require.NoError(t, err)
	p := batchParams(env)
	p.Inputs = []batch.Input{in}
	b, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)
	require.NoError(t, err)
	if completed {
		b, err = b.Complete(now.Add(-time.Hour))
		require.NoError(t, err)
	}
	return b
}

func mobileRunParams(t *testing.T) mobilerun.Params {
	t.Helper()
	location, err := kernel.NewGeoPoint(53.1, 8.2)
	require.NoError(t, err)
	return mobilerun.Params{
		MobileUnitID: kernel.NewUUID(),
		OperatorID:   kernel.NewUUID(),
		Site:         mobilerun.Site{CustomerID: kernel.NewUUID(), Location: location},
		Calibration: mobilerun.CalibrationCheck{
			ScaleOK:       true,
			MoistureOK:    true,
			TemperatureOK: true,
			Date:          now.Add(-time.Hour),
			ValidatedBy:   "operator-3",
		},
	}
}

func mobileRunIn(t *testing.T, env commands.Envelope) mobilerun.MobileRun {
	t.Helper()
	p := mobileRunParams(t)
	p.TenantID = env.TenantID()
	p.StartAt = now.Add(-3 * time.Hour)
	r, err := mobilerun.NewMobileRun(kernel.RandomIDGenerator{}, clock, p)
	require.NoError(t, err)
	return r
}
