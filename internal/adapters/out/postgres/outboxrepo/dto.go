package outboxrepo

import (
	"time"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventDTO is a row of the transactional outbox. PublishedAt stays nil until a relay delivers it.
type EventDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EventType     string         `gorm:"type:varchar(64);not null;index"`
	EventVersion  int            `gorm:"not null"`
	OccurredAt    time.Time      `gorm:"not null;index:ix_outbox_pending,priority:2"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null"`
	AggregateID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	CorrelationID *uuid.UUID     `gorm:"type:uuid"`
	CausationID   *uuid.UUID     `gorm:"type:uuid"`
	Payload       datatypes.JSON `gorm:"type:jsonb;not null"`
	PublishedAt   *time.Time     `gorm:"index:ix_outbox_pending,priority:1"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(e events.Event) EventDTO {
	return EventDTO{
		ID:            e.EventID.Bytes(),
		EventType:     string(e.EventType),
		EventVersion:  e.EventVersion,
		OccurredAt:    e.OccurredAt,
		TenantID:      e.TenantID.Bytes(),
		AggregateID:   e.AggregateID.Bytes(),
		CorrelationID: optionalBytes(e.CorrelationID),
		CausationID:   optionalBytes(e.CausationID),
		Payload:       datatypes.JSON(e.Payload),
	}
}

func toDomain(dto EventDTO) (events.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return events.Event{}, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return events.Event{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return events.Event{}, err
	}
	correlationID, err := optionalUUID(dto.CorrelationID)
	if err != nil {
		return events.Event{}, err
	}
	causationID, err := optionalUUID(dto.CausationID)
	if err != nil {
		return events.Event{}, err
	}

	return events.Event{
		EventID:       id,
		EventType:     events.Type(dto.EventType),
		EventVersion:  dto.EventVersion,
		OccurredAt:    kernel.NormalizeTime(dto.OccurredAt),
		TenantID:      tenantID,
		AggregateID:   aggregateID,
		CorrelationID: correlationID,
		CausationID:   causationID,
		Payload:       []byte(dto.Payload),
	}, nil
}

func optionalBytes(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	return &u, nil
}
