package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/events"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrEnvelopeIsNotConstructed = errors.New("Envelope must be created via NewEnvelope constructor")

// Envelope carries the request context every command needs: the tenant that
// scopes all reads and writes, the acting user and the tracing identifier.
type Envelope struct {
	tenantID      kernel.UUID
	actor         string
	correlationID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewEnvelope(tenantID kernel.UUID, actor string, correlationID *kernel.UUID) (Envelope, error) {
	if err := tenantID.Validate(); err != nil {
		return Envelope{}, err
	}
	if correlationID != nil {
		if err := correlationID.Validate(); err != nil {
			return Envelope{}, err
		}
	}
	return Envelope{
		tenantID:      tenantID,
		actor:         strings.TrimSpace(actor),
		correlationID: correlationID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (e Envelope) Validate() error {
	return e.guard.Validate(ErrEnvelopeIsNotConstructed)
}

func (e Envelope) TenantID() kernel.UUID {
	return e.tenantID
}

func (e Envelope) Actor() string {
	return e.actor
}

// Metadata returns the tracing identifiers for emitted events.
func (e Envelope) Metadata() events.Metadata {
	return events.Metadata{CorrelationID: e.correlationID}
}
