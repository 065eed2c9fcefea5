package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/errs"
)

// Factory stamps identifiers and timestamps on new envelopes.
type Factory struct {
	ids   kernel.IDGenerator
	clock kernel.Clock
}

func NewFactory(ids kernel.IDGenerator, clock kernel.Clock) Factory {
	return Factory{ids: ids, clock: clock}
}

// New builds an envelope around payload, which is encoded as JSON.
func (f Factory) New(eventType Type, tenantID, aggregateID kernel.UUID, payload any, meta Metadata) (Event, error) {
	if err := errors.Join(
		eventType.Validate(),
		tenantID.Validate(),
		aggregateID.Validate(),
	); err != nil {
		return Event{}, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return Event{
		EventID:       f.ids.NewID(),
		EventType:     eventType,
		EventVersion:  CurrentVersion,
		OccurredAt:    f.clock.Now(),
		TenantID:      tenantID,
		AggregateID:   aggregateID,
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Payload:       raw,
	}, nil
}

// MixOrderStatusPayload is published for every mix order transition after creation.
type MixOrderStatusPayload struct {
	MixOrderID  string `json:"mixOrderId"`
	OrderNumber string `json:"orderNumber"`
	Status      string `json:"status"`
	Notes       string `json:"notes,omitempty"`
}

func (f Factory) MixOrderCreated(o mixorder.MixOrder, meta Metadata) (Event, error) {
	return f.New(MixOrderCreated, o.TenantID(), o.ID(), o.ToDocument(), meta)
}

// MixOrderTransitioned reports a lifecycle move; eventType must be one of the mix order types.
func (f Factory) MixOrderTransitioned(eventType Type, o mixorder.MixOrder, meta Metadata) (Event, error) {
	switch eventType {
	case MixOrderStaged, MixOrderStarted, MixOrderCompleted, MixOrderAborted:
	default:
		return Event{}, errs.NewValueIsInvalidErrorWithCause("eventType",
			fmt.Errorf("%q is not a mix order transition", string(eventType)))
	}
	return f.New(eventType, o.TenantID(), o.ID(), MixOrderStatusPayload{
		MixOrderID:  o.ID().String(),
		OrderNumber: o.OrderNumber(),
		Status:      o.Status().String(),
		Notes:       o.Notes(),
	}, meta)
}

// BatchStatusPayload is published when a batch changes quality state.
type BatchStatusPayload struct {
	BatchID     string   `json:"batchId"`
	BatchNumber string   `json:"batchNumber"`
	MixOrderID  string   `json:"mixOrderId"`
	Status      string   `json:"status"`
	Reason      string   `json:"reason,omitempty"`
	Labels      []string `json:"labels"`
}

func (f Factory) BatchCreated(b batch.Batch, meta Metadata) (Event, error) {
	return f.New(BatchCreated, b.TenantID(), b.ID(), b.ToDocument(), meta)
}

// BatchStatusChanged derives the event type from the batch's new status.
func (f Factory) BatchStatusChanged(b batch.Batch, reason string, meta Metadata) (Event, error) {
	var eventType Type
	switch b.Status() {
	case batch.Released:
		eventType = BatchReleased
	case batch.Quarantine:
		eventType = BatchQuarantined
	case batch.Rejected:
		eventType = BatchRejected
	default:
		return Event{}, b.Status().Validate()
	}
	labels := b.Labels()
	if labels == nil {
		labels = []string{}
	}
	return f.New(eventType, b.TenantID(), b.ID(), BatchStatusPayload{
		BatchID:     b.ID().String(),
		BatchNumber: b.BatchNumber(),
		MixOrderID:  b.MixOrderID().String(),
		Status:      b.Status().String(),
		Reason:      reason,
		Labels:      labels,
	}, meta)
}

// MobileRunFinishedPayload summarises a closed run.
type MobileRunFinishedPayload struct {
	MobileRunID      string    `json:"mobileRunId"`
	MobileUnitID     string    `json:"mobileUnitId"`
	EndAt            time.Time `json:"endAt"`
	DurationHours    float64   `json:"durationHours"`
	TotalFlushMassKg float64   `json:"totalFlushMassKg"`
}

func (f Factory) MobileRunStarted(r mobilerun.MobileRun, meta Metadata) (Event, error) {
	return f.New(MobileRunStarted, r.TenantID(), r.ID(), r.ToDocument(), meta)
}

func (f Factory) MobileRunFinished(r mobilerun.MobileRun, meta Metadata) (Event, error) {
	endAt := r.EndAt()
	if endAt == nil {
		return Event{}, errs.NewValueIsRequiredError("endAt")
	}
	return f.New(MobileRunFinished, r.TenantID(), r.ID(), MobileRunFinishedPayload{
		MobileRunID:      r.ID().String(),
		MobileUnitID:     r.MobileUnitID().String(),
		EndAt:            *endAt,
		DurationHours:    r.DurationHours(*endAt),
		TotalFlushMassKg: r.TotalFlushMassKg(),
	}, meta)
}

// CleaningPayload carries a finished cleaning sequence.
type CleaningPayload struct {
	MobileRunID  string                             `json:"mobileRunId"`
	MobileUnitID string                             `json:"mobileUnitId"`
	Sequence     mobilerun.CleaningSequenceDocument `json:"sequence"`
}

// CleaningPerformed emits production.flush.performed for Flush sequences and
// production.cleaning.performed for every other type.
func (f Factory) CleaningPerformed(r mobilerun.MobileRun, seq mobilerun.CleaningSequence, meta Metadata) (Event, error) {
	eventType := CleaningPerformed
	if seq.Type() == mobilerun.Flush {
		eventType = FlushPerformed
	}
	return f.New(eventType, r.TenantID(), r.ID(), CleaningPayload{
		MobileRunID:  r.ID().String(),
		MobileUnitID: r.MobileUnitID().String(),
		Sequence:     seq.ToDocument(),
	}, meta)
}

// CalibrationPayload carries the calibration record that was just stored.
type CalibrationPayload struct {
	MobileRunID  string                             `json:"mobileRunId"`
	MobileUnitID string                             `json:"mobileUnitId"`
	Valid        bool                               `json:"valid"`
	Check        mobilerun.CalibrationCheckDocument `json:"check"`
}

func (f Factory) CalibrationChecked(r mobilerun.MobileRun, meta Metadata) (Event, error) {
	check := r.CalibrationCheck()
	return f.New(CalibrationChecked, r.TenantID(), r.ID(), CalibrationPayload{
		MobileRunID:  r.ID().String(),
		MobileUnitID: r.MobileUnitID().String(),
		Valid:        check.IsValid(),
		Check:        check.ToDocument(),
	}, meta)
}
