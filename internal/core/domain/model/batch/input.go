package batch

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/guard"
)

var ErrInputIsNotConstructed = errors.New("Input must be created via NewInput")

// Input links a batch to one consumed ingredient lot.
type Input struct {
	ingredientLotID kernel.UUID
	plannedKg       float64
	actualKg        float64
	guard           guard.ConstructorGuard
}

func NewInput(ingredientLotID kernel.UUID, plannedKg, actualKg float64) (Input, error) {
	var errList []error
	errList = append(errList,
		ingredientLotID.Validate(),
		kernel.ValidateNonNegative("plannedKg", plannedKg),
		kernel.ValidatePositive("actualKg", actualKg),
	)
	if err := errors.Join(errList...); err != nil {
		return Input{}, err
	}

	return Input{
		ingredientLotID: ingredientLotID,
		plannedKg:       plannedKg,
		actualKg:        actualKg,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (i Input) Validate() error {
	return i.guard.Validate(ErrInputIsNotConstructed)
}

func (i Input) IngredientLotID() kernel.UUID {
	return i.ingredientLotID
}

func (i Input) PlannedKg() float64 {
	return i.plannedKg
}

func (i Input) ActualKg() float64 {
	return i.actualKg
}

// VarianceKg is actual minus planned consumption.
func (i Input) VarianceKg() float64 {
	return i.actualKg - i.plannedKg
}
