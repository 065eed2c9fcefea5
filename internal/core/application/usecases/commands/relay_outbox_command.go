package commands

import (
	"errors"

	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrRelayOutboxCommandIsNotConstructed = errors.New(
	"RelayOutboxCommand must be created via NewRelayOutboxCommand constructor",
)

// RelayOutboxCommand asks for at most Limit pending events to be published.
type RelayOutboxCommand struct {
	limit int

	guard guard.ConstructorGuard
}

func NewRelayOutboxCommand(limit int) (RelayOutboxCommand, error) {
	if limit <= 0 {
		return RelayOutboxCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return RelayOutboxCommand{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayOutboxCommand) Validate() error {
	return c.guard.Validate(ErrRelayOutboxCommandIsNotConstructed)
}

func (c RelayOutboxCommand) Limit() int {
	return c.limit
}
