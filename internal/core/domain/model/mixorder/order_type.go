package mixorder

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Type distinguishes plant production from on-site mobile production.
type Type int

const (
	UnknownType Type = iota
	Plant
	Mobile
)

func (t Type) String() string {
	switch t {
	case Plant:
		return "Plant"
	case Mobile:
		return "Mobile"
	default:
		return "Unknown"
	}
}

func (t Type) Validate() error {
	if t != Plant && t != Mobile {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

func ParseType(s string) (Type, error) {
	switch s {
	case "Plant":
		return Plant, nil
	case "Mobile":
		return Mobile, nil
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid order type", s))
}
