package mixorder

import (
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// StepType names one activity inside a production run.
type StepType string

const (
	StepWeigh    StepType = "weigh"
	StepDose     StepType = "dose"
	StepGrind    StepType = "grind"
	StepMix      StepType = "mix"
	StepFlushing StepType = "flushing"
	StepTransfer StepType = "transfer"
)

var (
	// ErrInvalidStepTiming is returned when a step ends at or before its start.
	ErrInvalidStepTiming = errs.NewRuleViolationError("InvalidStepTiming")
	// ErrStepIsNotConstructed is returned when a zero-value Step is used.
	ErrStepIsNotConstructed = errors.New("Step must be created via NewStep constructor")
)

func (t StepType) Validate() error {
	switch t {
	case StepWeigh, StepDose, StepGrind, StepMix, StepFlushing, StepTransfer:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("step type", fmt.Errorf("%q is not a valid step type", string(t)))
}

// Actuals are the measured values recorded for a step. All fields are optional.
type Actuals struct {
	MassKg          *float64
	TimeSec         *float64
	EnergyKWh       *float64
	MoisturePercent *float64
}

func (a Actuals) Validate() error {
	var errList []error
	for name, v := range map[string]*float64{"massKg": a.MassKg, "timeSec": a.TimeSec, "energyKWh": a.EnergyKWh} {
		if v != nil {
			errList = append(errList, kernel.ValidateNonNegative(name, *v))
		}
	}
	if a.MoisturePercent != nil && !(*a.MoisturePercent >= 0 && *a.MoisturePercent <= 100) {
		errList = append(errList, errs.NewValueIsOutOfRangeError("moisturePercent", *a.MoisturePercent, 0, 100))
	}
	return errors.Join(errList...)
}

func (a Actuals) clone() Actuals {
	return Actuals{
		MassKg:          cloneFloat(a.MassKg),
		TimeSec:         cloneFloat(a.TimeSec),
		EnergyKWh:       cloneFloat(a.EnergyKWh),
		MoisturePercent: cloneFloat(a.MoisturePercent),
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Step is one activity (weigh, dose, grind, ...) inside a mix order.
type Step struct {
	stepType    StepType
	startedAt   time.Time
	endedAt     *time.Time
	equipmentID string
	actuals     *Actuals
	guard       guard.ConstructorGuard
}

// NewStep validates the step type, the actuals and, when endedAt is given, endedAt > startedAt.
func NewStep(stepType StepType, startedAt time.Time, endedAt *time.Time, equipmentID string, actuals *Actuals) (Step, error) {
	s := Step{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setType(stepType),
		s.setTiming(startedAt, endedAt),
		s.setActuals(actuals),
	); err != nil {
		return Step{}, err
	}
	s.equipmentID = equipmentID

	return s, nil
}

func (s Step) Validate() error {
	return s.guard.Validate(ErrStepIsNotConstructed)
}

func (s Step) Type() StepType {
	return s.stepType
}

func (s Step) StartedAt() time.Time {
	return s.startedAt
}

func (s Step) EndedAt() *time.Time {
	return kernel.NormalizeOptionalTime(s.endedAt)
}

func (s Step) EquipmentID() string {
	return s.equipmentID
}

// Actuals returns a copy of the recorded measurements, nil when none were recorded.
func (s Step) Actuals() *Actuals {
	if s.actuals == nil {
		return nil
	}
	a := s.actuals.clone()
	return &a
}

func (s Step) IsEnded() bool {
	return s.endedAt != nil
}

// Duration is zero for a step that has not ended.
func (s Step) Duration() time.Duration {
	if s.endedAt == nil {
		return 0
	}
	return s.endedAt.Sub(s.startedAt)
}

func (s *Step) setType(stepType StepType) error {
	if err := stepType.Validate(); err != nil {
		return err
	}
	s.stepType = stepType
	return nil
}

func (s *Step) setTiming(startedAt time.Time, endedAt *time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	if endedAt != nil && !endedAt.After(startedAt) {
		return errs.NewRuleViolationErrorWithCause(
			ErrInvalidStepTiming.Rule,
			fmt.Errorf("endedAt %s is not after startedAt %s", endedAt.Format(time.RFC3339), startedAt.Format(time.RFC3339)),
		)
	}
	s.startedAt = kernel.NormalizeTime(startedAt)
	s.endedAt = kernel.NormalizeOptionalTime(endedAt)
	return nil
}

func (s *Step) setActuals(actuals *Actuals) error {
	if actuals == nil {
		s.actuals = nil
		return nil
	}
	if err := actuals.Validate(); err != nil {
		return err
	}
	a := actuals.clone()
	s.actuals = &a
	return nil
}

// StepPatch carries the fields UpdateStep should replace; nil fields are kept.
type StepPatch struct {
	Type        *StepType
	StartedAt   *time.Time
	EndedAt     *time.Time
	EquipmentID *string
	Actuals     *Actuals
}

func (s Step) apply(p StepPatch) (Step, error) {
	stepType, startedAt, endedAt, equipmentID, actuals := s.stepType, s.startedAt, s.endedAt, s.equipmentID, s.actuals
	if p.Type != nil {
		stepType = *p.Type
	}
	if p.StartedAt != nil {
		startedAt = *p.StartedAt
	}
	if p.EndedAt != nil {
		endedAt = p.EndedAt
	}
	if p.EquipmentID != nil {
		equipmentID = *p.EquipmentID
	}
	if p.Actuals != nil {
		actuals = p.Actuals
	}
	return NewStep(stepType, startedAt, endedAt, equipmentID, actuals)
}
