package kernel

import (
	"fmt"
	"math"

	"production/internal/pkg/errs"
)

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidatePositive accepts finite values greater than zero.
func ValidatePositive(paramName string, v float64) error {
	if !IsFinite(v) {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%v is not a finite number", v))
	}
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%v is not greater than 0", v))
	}
	return nil
}

// ValidateNonNegative accepts finite values of zero or more.
func ValidateNonNegative(paramName string, v float64) error {
	if !IsFinite(v) {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%v is not a finite number", v))
	}
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%v is negative", v))
	}
	return nil
}
