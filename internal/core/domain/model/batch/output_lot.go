package batch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var numberPattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

var (
	ErrOutputLotIsNotConstructed = errors.New("OutputLot must be created via NewOutputLot")
	ErrInvalidLotNumberFormat    = errs.NewRuleViolationError("InvalidLotNumberFormat")
)

// PackingForm is how an output lot leaves the line.
type PackingForm string

const (
	Bulk PackingForm = "Bulk"
	Bag  PackingForm = "Bag"
	Silo PackingForm = "Silo"
)

func (f PackingForm) Validate() error {
	switch f {
	case Bulk, Bag, Silo:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("packing.form", fmt.Errorf("%q is not a valid packing form", string(f)))
}

// Destination is where an output lot is shipped.
type Destination string

const (
	Inventory  Destination = "Inventory"
	DirectFarm Destination = "DirectFarm"
)

func (d Destination) Validate() error {
	switch d {
	case Inventory, DirectFarm:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("destination", fmt.Errorf("%q is not a valid destination", string(d)))
}

// Packing describes the container of an output lot. Size and unit are optional.
type Packing struct {
	Form PackingForm
	Size *float64
	Unit string
}

func (p Packing) Validate() error {
	var errList []error
	errList = append(errList, p.Form.Validate())
	if p.Size != nil {
		errList = append(errList, kernel.ValidatePositive("packing.size", *p.Size))
	}
	return errors.Join(errList...)
}

func (p Packing) clone() Packing {
	c := p
	if p.Size != nil {
		size := *p.Size
		c.Size = &size
	}
	return c
}

// OutputLot is one produced, traceable lot of a batch.
type OutputLot struct {
	id              kernel.UUID
	lotNumber       string
	qtyKg           float64
	packing         Packing
	destination     Destination
	gmpPlusMarkings []string
	guard           guard.ConstructorGuard
}

func NewOutputLot(
	id kernel.UUID,
	lotNumber string,
	qtyKg float64,
	packing Packing,
	destination Destination,
	gmpPlusMarkings []string,
) (OutputLot, error) {
	lotNumber = strings.TrimSpace(lotNumber)

	var errList []error
	errList = append(errList,
		id.Validate(),
		validateNumber("lotNumber", lotNumber, ErrInvalidLotNumberFormat),
		kernel.ValidatePositive("qtyKg", qtyKg),
	)
	errList = append(errList, packing.Validate(), destination.Validate())
	if err := errors.Join(errList...); err != nil {
		return OutputLot{}, err
	}

	return OutputLot{
		id:              id,
		lotNumber:       lotNumber,
		qtyKg:           qtyKg,
		packing:         packing.clone(),
		destination:     destination,
		gmpPlusMarkings: cloneStrings(gmpPlusMarkings),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (o OutputLot) Validate() error {
	return o.guard.Validate(ErrOutputLotIsNotConstructed)
}

func (o OutputLot) ID() kernel.UUID {
	return o.id
}

func (o OutputLot) LotNumber() string {
	return o.lotNumber
}

func (o OutputLot) QtyKg() float64 {
	return o.qtyKg
}

func (o OutputLot) Packing() Packing {
	return o.packing.clone()
}

func (o OutputLot) Destination() Destination {
	return o.destination
}

func (o OutputLot) GMPPlusMarkings() []string {
	return cloneStrings(o.gmpPlusMarkings)
}

func validateNumber(param, value string, rule *errs.RuleViolationError) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	if !numberPattern.MatchString(value) {
		return errs.NewRuleViolationErrorWithCause(rule.Rule,
			fmt.Errorf("%s %q may only contain A-Z, 0-9, '-' and '_'", param, value))
	}
	return nil
}

// cloneStrings copies s; empty input yields nil so snapshots compare equal after a round trip.
func cloneStrings(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string(nil), s...)
}
