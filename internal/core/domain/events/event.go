package events

import (
	"encoding/json"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Type is the routing key of an event on the bus.
type Type string

const (
	MixOrderCreated   Type = "production.mix_order.created"
	MixOrderStaged    Type = "production.mix_order.staged"
	MixOrderStarted   Type = "production.mix_order.started"
	MixOrderCompleted Type = "production.mix_order.completed"
	MixOrderAborted   Type = "production.mix_order.aborted"

	BatchCreated     Type = "production.batch.created"
	BatchReleased    Type = "production.batch.released"
	BatchQuarantined Type = "production.batch.quarantined"
	BatchRejected    Type = "production.batch.rejected"

	MobileRunStarted  Type = "production.mobile_run.started"
	MobileRunFinished Type = "production.mobile_run.finished"

	CleaningPerformed  Type = "production.cleaning.performed"
	FlushPerformed     Type = "production.flush.performed"
	CalibrationChecked Type = "production.calibration.checked"
)

// CurrentVersion is the schema version stamped on every envelope.
const CurrentVersion = 1

var knownTypes = map[Type]struct{}{
	MixOrderCreated: {}, MixOrderStaged: {}, MixOrderStarted: {}, MixOrderCompleted: {}, MixOrderAborted: {},
	BatchCreated: {}, BatchReleased: {}, BatchQuarantined: {}, BatchRejected: {},
	MobileRunStarted: {}, MobileRunFinished: {},
	CleaningPerformed: {}, FlushPerformed: {}, CalibrationChecked: {},
}

// Types lists every event type in a stable order.
func Types() []Type {
	return []Type{
		MixOrderCreated, MixOrderStaged, MixOrderStarted, MixOrderCompleted, MixOrderAborted,
		BatchCreated, BatchReleased, BatchQuarantined, BatchRejected,
		MobileRunStarted, MobileRunFinished,
		CleaningPerformed, FlushPerformed, CalibrationChecked,
	}
}

func (t Type) Validate() error {
	if _, ok := knownTypes[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("eventType", fmt.Errorf("%q is not a known event type", string(t)))
	}
	return nil
}

// Event is the envelope handed to the bus. AggregateID is not part of the
// published contract but lets the outbox index events by source.
type Event struct {
	EventID       kernel.UUID     `json:"eventId"`
	EventType     Type            `json:"eventType"`
	EventVersion  int             `json:"eventVersion"`
	OccurredAt    time.Time       `json:"occurredAt"`
	TenantID      kernel.UUID     `json:"tenantId"`
	AggregateID   kernel.UUID     `json:"aggregateId"`
	CorrelationID *kernel.UUID    `json:"correlationId,omitempty"`
	CausationID   *kernel.UUID    `json:"causationId,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// Metadata carries the optional tracing identifiers of an envelope.
type Metadata struct {
	CorrelationID *kernel.UUID
	CausationID   *kernel.UUID
}
