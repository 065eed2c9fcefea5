package services

import (
	"time"

	"production/internal/core/domain/model/mobilerun"
)

// ChangeoverReason explains why a plan does or does not require cleaning.
type ChangeoverReason string

const (
	ReasonMedicatedToNonMedicated ChangeoverReason = "MedicatedToNonMedicated"
	ReasonNoRecentCleaning        ChangeoverReason = "NoRecentCleaning"
	ReasonRecentlyCleaned         ChangeoverReason = "RecentlyCleaned"
)

// ChangeoverPlan is the outcome of planning a product change on a mobile unit.
type ChangeoverPlan struct {
	Required           bool
	CleaningType       mobilerun.CleaningType
	Reason             ChangeoverReason
	LastCleaningAt     *time.Time
	CalibrationAgeDays int
	CalibrationExpired bool
}

// ChangeoverPlanner combines the contamination-prevention rules of a mobile run
// into a single plan for the caller.
//
// Business rules:
//   - a medicated recipe followed by a non-medicated one always needs a WetClean
//   - any other changeover needs a Flush unless a cleaning finished within 24 hours
//   - calibration age is reported, never enforced
//
// Example usage:
//
//	planner := services.NewChangeoverPlanner(30)
//	plan, err := planner.Plan(run, true, false, time.Now())
//	if err != nil {
//	    return err
//	}
//	if plan.Required {
//	    // schedule plan.CleaningType before the next mix order
//	}
type ChangeoverPlanner struct {
	calibrationMaxAgeDays int
}

// NewChangeoverPlanner creates a planner. A non-positive calibrationMaxAgeDays
// falls back to mobilerun.DefaultCalibrationMaxAgeDays.
func NewChangeoverPlanner(calibrationMaxAgeDays int) ChangeoverPlanner {
	if calibrationMaxAgeDays <= 0 {
		calibrationMaxAgeDays = mobilerun.DefaultCalibrationMaxAgeDays
	}
	return ChangeoverPlanner{calibrationMaxAgeDays: calibrationMaxAgeDays}
}

// Plan evaluates the changeover from the previous to the current recipe on run.
//
// Parameters:
//   - run: the mobile run the changeover happens on (must be constructed)
//   - prevMedicated: whether the previous recipe was medicated
//   - currMedicated: whether the next recipe is medicated
//   - now: the evaluation instant for the staleness and calibration rules
func (p ChangeoverPlanner) Plan(run mobilerun.MobileRun, prevMedicated, currMedicated bool, now time.Time) (ChangeoverPlan, error) {
	if err := run.Validate(); err != nil {
		return ChangeoverPlan{}, err
	}

	calibration := run.CalibrationCheck()
	plan := ChangeoverPlan{
		Required:           run.ValidateCleaningRequired(prevMedicated, currMedicated, now),
		CleaningType:       run.RequiredCleaningType(prevMedicated, currMedicated),
		CalibrationAgeDays: calibration.AgeInDays(now),
		CalibrationExpired: calibration.IsExpired(now, p.calibrationMaxAgeDays),
	}
	if last, ok := run.LastCompletedCleaning(); ok {
		plan.LastCleaningAt = last.EndedAt()
	}

	switch {
	case prevMedicated && !currMedicated:
		plan.Reason = ReasonMedicatedToNonMedicated
	case plan.Required:
		plan.Reason = ReasonNoRecentCleaning
	default:
		plan.Reason = ReasonRecentlyCleaned
	}
	return plan, nil
}
