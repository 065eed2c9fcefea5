package commands

import (
	"errors"

	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/guard"
)

var ErrStartMobileRunCommandIsNotConstructed = errors.New(
	"StartMobileRunCommand must be created via NewStartMobileRunCommand constructor",
)

type StartMobileRunCommand struct {
	envelope Envelope
	params   mobilerun.Params

	guard guard.ConstructorGuard
}

func NewStartMobileRunCommand(env Envelope, params mobilerun.Params) (StartMobileRunCommand, error) {
	if err := env.Validate(); err != nil {
		return StartMobileRunCommand{}, err
	}
	params.TenantID = env.TenantID()

	return StartMobileRunCommand{
		envelope: env,
		params:   params,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c StartMobileRunCommand) Validate() error {
	return c.guard.Validate(ErrStartMobileRunCommandIsNotConstructed)
}

func (c StartMobileRunCommand) Envelope() Envelope {
	return c.envelope
}

func (c StartMobileRunCommand) Params() mobilerun.Params {
	return c.params
}
