package mobilerun

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// DefaultCalibrationMaxAgeDays is the validity window used when callers pass no window.
const DefaultCalibrationMaxAgeDays = 30

var (
	ErrCalibrationInFuture = errs.NewRuleViolationError("CalibrationDateInFuture")
	ErrCalibrationInvalid  = errs.NewRuleViolationError("CalibrationInvalid")
)

// CalibrationCheck records the pre-run check of the unit's measuring equipment.
type CalibrationCheck struct {
	ScaleOK       bool
	MoistureOK    bool
	TemperatureOK bool
	Date          time.Time
	ValidatedBy   string
	Notes         string
}

// Validate checks the record's shape and that it was not dated after now.
func (c CalibrationCheck) Validate(now time.Time) error {
	var errList []error
	if c.Date.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("calibrationCheck.date"))
	} else if c.Date.After(now) {
		errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrCalibrationInFuture.Rule,
			fmt.Errorf("calibration dated %s is after %s", c.Date.Format(time.RFC3339), now.Format(time.RFC3339))))
	}
	if strings.TrimSpace(c.ValidatedBy) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("calibrationCheck.validatedBy"))
	}
	return errors.Join(errList...)
}

// IsValid reports whether every checked instrument passed.
func (c CalibrationCheck) IsValid() bool {
	return c.ScaleOK && c.MoistureOK && c.TemperatureOK
}

// AgeInDays counts whole days between the check and now.
func (c CalibrationCheck) AgeInDays(now time.Time) int {
	return int(now.Sub(c.Date).Hours() / 24)
}

// IsExpired reports whether the check is older than maxDays. A non-positive
// maxDays means DefaultCalibrationMaxAgeDays.
func (c CalibrationCheck) IsExpired(now time.Time, maxDays int) bool {
	if maxDays <= 0 {
		maxDays = DefaultCalibrationMaxAgeDays
	}
	return c.AgeInDays(now) > maxDays
}

func (c CalibrationCheck) normalized() CalibrationCheck {
	c.Date = kernel.NormalizeTime(c.Date)
	c.ValidatedBy = strings.TrimSpace(c.ValidatedBy)
	return c
}

func (c CalibrationCheck) failedInstruments() string {
	var failed []string
	if !c.ScaleOK {
		failed = append(failed, "scale")
	}
	if !c.MoistureOK {
		failed = append(failed, "moisture")
	}
	if !c.TemperatureOK {
		failed = append(failed, "temperature")
	}
	return strings.Join(failed, ", ")
}
