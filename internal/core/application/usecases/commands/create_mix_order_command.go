package commands

import (
	"errors"

	"production/internal/core/domain/model/mixorder"
	"production/internal/pkg/guard"
)

var ErrCreateMixOrderCommandIsNotConstructed = errors.New(
	"CreateMixOrderCommand must be created via NewCreateMixOrderCommand constructor",
)

type CreateMixOrderCommand struct {
	envelope Envelope
	params   mixorder.Params

	guard guard.ConstructorGuard
}

// NewCreateMixOrderCommand takes tenant and author from env; the matching fields of params are overwritten.
func NewCreateMixOrderCommand(env Envelope, params mixorder.Params) (CreateMixOrderCommand, error) {
	if err := env.Validate(); err != nil {
		return CreateMixOrderCommand{}, err
	}
	params.TenantID = env.TenantID()
	params.CreatedBy = env.Actor()

	return CreateMixOrderCommand{
		envelope: env,
		params:   params,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateMixOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateMixOrderCommandIsNotConstructed)
}

func (c CreateMixOrderCommand) Envelope() Envelope {
	return c.envelope
}

func (c CreateMixOrderCommand) Params() mixorder.Params {
	return c.params
}
