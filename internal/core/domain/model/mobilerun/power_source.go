package mobilerun

import (
	"fmt"

	"production/internal/pkg/errs"
)

// PowerSource feeds the mobile unit on site.
type PowerSource string

const (
	Generator PowerSource = "Generator"
	Grid      PowerSource = "Grid"
	Battery   PowerSource = "Battery"
)

// DefaultPowerSource is applied when a run is created without one.
const DefaultPowerSource = Generator

func (p PowerSource) Validate() error {
	switch p {
	case Generator, Grid, Battery:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("powerSource", fmt.Errorf("%q is not a valid power source", string(p)))
}

func (p PowerSource) orDefault() PowerSource {
	if p == "" {
		return DefaultPowerSource
	}
	return p
}
