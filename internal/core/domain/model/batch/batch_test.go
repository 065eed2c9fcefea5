package batch_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var startAt = time.Date(2026, 3, 9, 5, 30, 0, 0, time.UTC)

func mustInput(t *testing.T, actualKg float64) batch.Input {
	t.Helper()
	in, err := batch.NewInput(kernel.NewUUID(), actualKg, actualKg)
	require.NoError(t, err)
	return in
}

func mustOutput(t *testing.T, lotNumber string, qtyKg float64) batch.OutputLot {
	t.Helper()
	out, err := batch.NewOutputLot(kernel.NewUUID(), lotNumber, qtyKg, batch.Packing{Form: batch.Bulk}, batch.Inventory, nil)
	require.NoError(t, err)
	return out
}

func params() batch.Params {
	return batch.Params{
		TenantID:      kernel.NewUUID(),
		BatchNumber:   "B-2026-0042",
		MixOrderID:    kernel.NewUUID(),
		ProducedQtyKg: 1000,
		StartAt:       startAt,
	}
}

func newBatch(t *testing.T, p batch.Params) batch.Batch {
	t.Helper()
	b, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)
	require.NoError(t, err)
	return b
}

func completedBatch(t *testing.T) batch.Batch {
	t.Helper()
	b, err := newBatch(t, params()).Complete(startAt.Add(3 * time.Hour))
	require.NoError(t, err)
	return b
}

func TestNewBatch(t *testing.T) {
	t.Run("should start in quarantine", func(t *testing.T) {
		id := kernel.NewUUID()

		b, err := batch.NewBatch(kernel.NewSequenceIDGenerator(id), params())

		require.NoError(t, err)
		assert.Equal(t, id, b.ID())
		assert.Equal(t, batch.Quarantine, b.Status())
		assert.Equal(t, 1, b.Version())
		assert.False(t, b.IsCompleted())
		assert.False(t, b.IsRework())
	})

	tests := map[string]struct {
		batchNumber string
		wantErr     error
	}{
		"uppercase with hyphen": {"LOT-1", nil},
		"underscore":            {"MILL_7_2026", nil},
		"lowercase":             {"lot-1", batch.ErrInvalidBatchNumberFormat},
		"space":                 {"LOT 1", batch.ErrInvalidBatchNumberFormat},
		"empty":                 {"", errs.ErrValueIsRequired},
	}
	for name, tt := range tests {
		t.Run("batch number "+name, func(t *testing.T) {
			p := params()
			p.BatchNumber = tt.batchNumber

			_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("should reject non positive produced quantity", func(t *testing.T) {
		p := params()
		p.ProducedQtyKg = 0

		_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject end before start", func(t *testing.T) {
		p := params()
		end := startAt.Add(-time.Minute)
		p.EndAt = &end

		_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

		require.ErrorIs(t, err, batch.ErrInvalidBatchTiming)
	})

	t.Run("should reject duplicate ingredient lots", func(t *testing.T) {
		in := mustInput(t, 100)
		p := params()
		p.Inputs = []batch.Input{in, in}

		_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

		require.ErrorIs(t, err, batch.ErrDuplicateIngredientLot)
	})
}

func TestNonFiniteQuantities(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)

	t.Run("input", func(t *testing.T) {
		_, err := batch.NewInput(kernel.NewUUID(), 100, inf)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = batch.NewInput(kernel.NewUUID(), nan, 100)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("output lot", func(t *testing.T) {
		_, err := batch.NewOutputLot(kernel.NewUUID(), "L-1", nan, batch.Packing{Form: batch.Bulk}, batch.Inventory, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		size := math.Inf(-1)
		_, err = batch.NewOutputLot(kernel.NewUUID(), "L-1", 10, batch.Packing{Form: batch.Bag, Size: &size}, batch.Inventory, nil)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("produced quantity", func(t *testing.T) {
		p := params()
		p.ProducedQtyKg = nan

		_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("overflowing input total fails the balance", func(t *testing.T) {
		p := params()
		p.Inputs = []batch.Input{mustInput(t, math.MaxFloat64), mustInput(t, math.MaxFloat64)}
		p.Outputs = []batch.OutputLot{mustOutput(t, "L-1", 1e12)}

		_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

		require.ErrorIs(t, err, batch.ErrMassBalanceViolation)
	})
}

func TestMassBalance(t *testing.T) {
	tests := map[string]struct {
		outputKg float64
		wantErr  bool
	}{
		"within tolerance": {104, false},
		"at tolerance":     {105, false},
		"above tolerance":  {106, true},
		"heavy yield loss": {50, false},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := params()
			p.Inputs = []batch.Input{mustInput(t, 100)}
			p.Outputs = []batch.OutputLot{mustOutput(t, "L-1", tt.outputKg)}

			_, err := batch.NewBatch(kernel.RandomIDGenerator{}, p)

			if tt.wantErr {
				require.ErrorIs(t, err, batch.ErrMassBalanceViolation)
				require.ErrorIs(t, err, errs.ErrRuleViolation)
				return
			}
			require.NoError(t, err)
		})
	}

	t.Run("should check balance on add output", func(t *testing.T) {
		b, err := newBatch(t, params()).AddInput(mustInput(t, 100))
		require.NoError(t, err)
		b, err = b.AddOutput(mustOutput(t, "L-1", 60))
		require.NoError(t, err)

		_, err = b.AddOutput(mustOutput(t, "L-2", 46))

		require.ErrorIs(t, err, batch.ErrMassBalanceViolation)
		assert.Len(t, b.Outputs(), 1, "failed mutation must leave the snapshot untouched")
	})
}

func TestBatch_Release(t *testing.T) {
	t.Run("should release completed quarantined batch", func(t *testing.T) {
		b := completedBatch(t)
		require.True(t, b.CanRelease())

		released, err := b.Release()

		require.NoError(t, err)
		assert.Equal(t, batch.Released, released.Status())
		assert.Equal(t, batch.Quarantine, b.Status())
	})

	t.Run("should refuse release without end time", func(t *testing.T) {
		b := newBatch(t, params())

		_, err := b.Release()

		require.ErrorIs(t, err, batch.ErrCannotRelease)
		var transitionErr *errs.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "release", transitionErr.Operation)
		assert.Contains(t, transitionErr.State, "Quarantine")
	})

	t.Run("should refuse releasing twice", func(t *testing.T) {
		released, err := completedBatch(t).Release()
		require.NoError(t, err)

		_, err = released.Release()

		require.ErrorIs(t, err, batch.ErrCannotRelease)
	})
}

func TestBatch_RejectAndQuarantine(t *testing.T) {
	t.Run("should reject with audit label", func(t *testing.T) {
		rejected, err := newBatch(t, params()).Reject("salmonella positive")

		require.NoError(t, err)
		assert.Equal(t, batch.Rejected, rejected.Status())
		assert.Equal(t, []string{"REJECTED: salmonella positive"}, rejected.Labels())
		assert.False(t, rejected.CanReject())
	})

	t.Run("should reject without reason", func(t *testing.T) {
		rejected, err := newBatch(t, params()).Reject("")

		require.NoError(t, err)
		assert.True(t, rejected.HasLabel("REJECTED"))
	})

	t.Run("should not reject twice", func(t *testing.T) {
		rejected, err := newBatch(t, params()).Reject("")
		require.NoError(t, err)

		_, err = rejected.Reject("again")

		require.ErrorIs(t, err, batch.ErrCannotReject)
	})

	t.Run("should recall released batch", func(t *testing.T) {
		released, err := completedBatch(t).Release()
		require.NoError(t, err)

		recalled, err := released.Quarantine("customer complaint")

		require.NoError(t, err)
		assert.Equal(t, batch.Quarantine, recalled.Status())
		assert.Equal(t, []string{"QUARANTINED: customer complaint"}, recalled.Labels())
	})

	t.Run("every recall is recorded", func(t *testing.T) {
		released, err := completedBatch(t).Release()
		require.NoError(t, err)
		recalled, err := released.Quarantine("recall")
		require.NoError(t, err)
		rereleased, err := recalled.Release()
		require.NoError(t, err)

		recalledAgain, err := rereleased.Quarantine("recall")

		require.NoError(t, err)
		assert.Equal(t, []string{"QUARANTINED: recall", "QUARANTINED: recall"}, recalledAgain.Labels())
		assert.Equal(t, []string{"QUARANTINED: recall"}, recalled.Labels())
	})

	t.Run("should not quarantine from quarantine or rejected", func(t *testing.T) {
		b := newBatch(t, params())
		_, err := b.Quarantine("")
		require.ErrorIs(t, err, batch.ErrCannotQuarantine)

		rejected, err := b.Reject("")
		require.NoError(t, err)
		_, err = rejected.Quarantine("")
		require.ErrorIs(t, err, batch.ErrCannotQuarantine)
	})
}

func TestBatch_Complete(t *testing.T) {
	b := completedBatch(t)
	assert.True(t, b.IsCompleted())

	_, err := b.Complete(startAt.Add(4 * time.Hour))
	require.ErrorIs(t, err, batch.ErrAlreadyCompleted)

	_, err = newBatch(t, params()).Complete(startAt)
	require.ErrorIs(t, err, batch.ErrInvalidBatchTiming)
}

func TestBatch_InputsAndOutputs(t *testing.T) {
	t.Run("should reject duplicate ingredient lot", func(t *testing.T) {
		in := mustInput(t, 50)
		b, err := newBatch(t, params()).AddInput(in)
		require.NoError(t, err)

		_, err = b.AddInput(in)

		require.ErrorIs(t, err, batch.ErrDuplicateIngredientLot)
	})

	t.Run("should reject duplicate lot number", func(t *testing.T) {
		b, err := newBatch(t, params()).AddInput(mustInput(t, 500))
		require.NoError(t, err)
		b, err = b.AddOutput(mustOutput(t, "L-7", 100))
		require.NoError(t, err)

		_, err = b.AddOutput(mustOutput(t, "L-7", 100))

		require.ErrorIs(t, err, batch.ErrDuplicateLotNumber)
	})

	t.Run("should reject lowercase lot number", func(t *testing.T) {
		_, err := batch.NewOutputLot(kernel.NewUUID(), "l-7", 10, batch.Packing{Form: batch.Bag}, batch.DirectFarm, nil)

		require.ErrorIs(t, err, batch.ErrInvalidLotNumberFormat)
	})

	t.Run("should validate packing and destination", func(t *testing.T) {
		size := -1.0
		_, err := batch.NewOutputLot(kernel.NewUUID(), "L-1", 10, batch.Packing{Form: "Crate", Size: &size}, "Moon", nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "packing.form")
		assert.Contains(t, err.Error(), "packing.size")
		assert.Contains(t, err.Error(), "destination")
	})

	t.Run("should report totals and yield", func(t *testing.T) {
		b, err := newBatch(t, params()).AddInput(mustInput(t, 600))
		require.NoError(t, err)
		b, err = b.AddInput(mustInput(t, 400))
		require.NoError(t, err)
		b, err = b.AddOutput(mustOutput(t, "L-1", 950))
		require.NoError(t, err)

		assert.InDelta(t, 1000.0, b.TotalInputKg(), 1e-9)
		assert.InDelta(t, 950.0, b.TotalOutputKg(), 1e-9)
		assert.InDelta(t, 95.0, b.YieldPercent(), 1e-9)
		assert.Zero(t, newBatch(t, params()).YieldPercent())
	})

	t.Run("should reject zero actual input", func(t *testing.T) {
		_, err := batch.NewInput(kernel.NewUUID(), 10, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestBatch_LabelsAndParents(t *testing.T) {
	t.Run("add label is idempotent", func(t *testing.T) {
		b := newBatch(t, params())

		once, err := b.AddLabel("GMP+")
		require.NoError(t, err)
		twice, err := once.AddLabel("GMP+")
		require.NoError(t, err)

		assert.Equal(t, once.Labels(), twice.Labels())
		assert.Empty(t, b.Labels())
	})

	t.Run("remove label is idempotent", func(t *testing.T) {
		b, err := newBatch(t, params()).AddLabel("organic")
		require.NoError(t, err)

		removed, err := b.RemoveLabel("organic")
		require.NoError(t, err)
		again, err := removed.RemoveLabel("organic")
		require.NoError(t, err)

		assert.Empty(t, again.Labels())
		assert.Equal(t, []string{"organic"}, b.Labels())
	})

	t.Run("status annotations cannot be removed", func(t *testing.T) {
		rejected, err := newBatch(t, params()).Reject("contaminated")
		require.NoError(t, err)

		for _, label := range []string{"REJECTED: contaminated", "REJECTED"} {
			_, err = rejected.RemoveLabel(label)
			require.ErrorIs(t, err, batch.ErrAuditLabelIsReserved)
		}
		assert.Equal(t, []string{"REJECTED: contaminated"}, rejected.Labels())
	})

	t.Run("status annotations cannot be added by hand", func(t *testing.T) {
		b := newBatch(t, params())

		_, err := b.AddLabel("QUARANTINED: manual")
		require.ErrorIs(t, err, batch.ErrAuditLabelIsReserved)
		_, err = b.AddLabel("REJECTED")
		require.ErrorIs(t, err, batch.ErrAuditLabelIsReserved)

		tagged, err := b.AddLabel("REJECTED-BY-CUSTOMER-2")
		require.NoError(t, err)
		assert.Equal(t, []string{"REJECTED-BY-CUSTOMER-2"}, tagged.Labels())
	})

	t.Run("add parent batch is idempotent", func(t *testing.T) {
		parent := kernel.NewUUID()
		b := newBatch(t, params())

		once, err := b.AddParentBatch(parent)
		require.NoError(t, err)
		twice, err := once.AddParentBatch(parent)
		require.NoError(t, err)

		assert.Equal(t, []kernel.UUID{parent}, twice.ParentBatches())
		assert.True(t, twice.IsRework())
		assert.False(t, b.IsRework())
	})

	t.Run("batch cannot be its own parent", func(t *testing.T) {
		b := newBatch(t, params())

		_, err := b.AddParentBatch(b.ID())

		require.ErrorIs(t, err, batch.ErrSelfParent)
	})

	t.Run("empty label is rejected", func(t *testing.T) {
		_, err := newBatch(t, params()).AddLabel("  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestBatch_TraceabilityData(t *testing.T) {
	in := mustInput(t, 100)
	parent := kernel.NewUUID()
	b, err := newBatch(t, params()).AddInput(in)
	require.NoError(t, err)
	b, err = b.AddOutput(mustOutput(t, "L-1", 98))
	require.NoError(t, err)
	b, err = b.AddParentBatch(parent)
	require.NoError(t, err)

	trace := b.TraceabilityData()

	assert.Equal(t, b.ID().String(), trace.BatchID)
	assert.Equal(t, b.MixOrderID().String(), trace.MixOrderID)
	assert.Equal(t, "Quarantine", trace.Status)
	require.Len(t, trace.Inputs, 1)
	assert.Equal(t, in.IngredientLotID().String(), trace.Inputs[0].IngredientLotID)
	require.Len(t, trace.Outputs, 1)
	assert.Equal(t, "L-1", trace.Outputs[0].LotNumber)
	assert.Equal(t, "Inventory", trace.Outputs[0].Destination)
	assert.Equal(t, "Bulk", trace.Outputs[0].Packing.Form)
	assert.Equal(t, []string{parent.String()}, trace.ParentBatches)
	assert.NotNil(t, trace.Labels)
}

func TestBatch_DocumentRoundTrip(t *testing.T) {
	size := 25.0
	out, err := batch.NewOutputLot(kernel.NewUUID(), "L-BAG-1", 500,
		batch.Packing{Form: batch.Bag, Size: &size, Unit: "kg"}, batch.DirectFarm, []string{"GMP+ B1"})
	require.NoError(t, err)

	b := completedBatch(t)
	b, err = b.AddInput(mustInput(t, 520))
	require.NoError(t, err)
	b, err = b.AddOutput(out)
	require.NoError(t, err)
	b, err = b.AddParentBatch(kernel.NewUUID())
	require.NoError(t, err)
	b, err = b.Reject("moisture out of spec")
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		raw, err := json.Marshal(b)
		require.NoError(t, err)

		var restored batch.Batch
		require.NoError(t, json.Unmarshal(raw, &restored))

		assert.Equal(t, b, restored)
	})

	t.Run("document", func(t *testing.T) {
		restored, err := batch.FromDocument(b.ToDocument())
		require.NoError(t, err)

		if diff := cmp.Diff(b.ToDocument(), restored.ToDocument()); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("tampered document fails mass balance", func(t *testing.T) {
		doc := b.ToDocument()
		doc.Outputs[0].QtyKg = 1000

		_, err := batch.FromDocument(doc)

		require.ErrorIs(t, err, batch.ErrMassBalanceViolation)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		doc := b.ToDocument()
		doc.Status = "Pending"

		_, err := batch.FromDocument(doc)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
