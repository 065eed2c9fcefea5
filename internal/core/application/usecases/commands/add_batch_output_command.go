package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAddBatchOutputCommandIsNotConstructed = errors.New(
	"AddBatchOutputCommand must be created via NewAddBatchOutputCommand constructor",
)

// OutputLotParams describes a produced lot; its identifier is generated by the handler.
type OutputLotParams struct {
	LotNumber       string
	QtyKg           float64
	Packing         batch.Packing
	Destination     batch.Destination
	GMPPlusMarkings []string
}

type AddBatchOutputCommand struct {
	envelope Envelope
	batchID  kernel.UUID
	params   OutputLotParams

	guard guard.ConstructorGuard
}

func NewAddBatchOutputCommand(env Envelope, batchID kernel.UUID, params OutputLotParams) (AddBatchOutputCommand, error) {
	var lotErr error
	if strings.TrimSpace(params.LotNumber) == "" {
		lotErr = errs.NewValueIsRequiredError("lotNumber")
	}
	if err := errors.Join(env.Validate(), batchID.Validate(), lotErr); err != nil {
		return AddBatchOutputCommand{}, err
	}
	return AddBatchOutputCommand{
		envelope: env,
		batchID:  batchID,
		params:   params,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AddBatchOutputCommand) Validate() error {
	return c.guard.Validate(ErrAddBatchOutputCommandIsNotConstructed)
}

func (c AddBatchOutputCommand) Envelope() Envelope {
	return c.envelope
}

func (c AddBatchOutputCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c AddBatchOutputCommand) Params() OutputLotParams {
	return c.params
}
