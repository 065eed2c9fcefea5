package commands

import (
	"errors"

	"production/internal/core/domain/model/batch"
	"production/internal/pkg/guard"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

type CreateBatchCommand struct {
	envelope Envelope
	params   batch.Params

	guard guard.ConstructorGuard
}

func NewCreateBatchCommand(env Envelope, params batch.Params) (CreateBatchCommand, error) {
	if err := errors.Join(env.Validate(), params.MixOrderID.Validate()); err != nil {
		return CreateBatchCommand{}, err
	}
	params.TenantID = env.TenantID()

	return CreateBatchCommand{
		envelope: env,
		params:   params,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

func (c CreateBatchCommand) Envelope() Envelope {
	return c.envelope
}

func (c CreateBatchCommand) Params() batch.Params {
	return c.params
}
