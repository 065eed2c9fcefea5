package mixorder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var (
	// ErrMixOrderIsNotConstructed is returned when a zero-value MixOrder is used.
	ErrMixOrderIsNotConstructed = errors.New("MixOrder must be created via NewMixOrder or Restore")
	// ErrMobileLocationRequired is returned when a Mobile order has no site location.
	ErrMobileLocationRequired = errs.NewRuleViolationError("MobileLocationRequired")
	// ErrMobileUnitRequired is returned when a Mobile order has no mobile unit.
	ErrMobileUnitRequired = errs.NewRuleViolationError("MobileUnitRequired")
	// ErrStepsNotSequential is returned when an open step is followed by another step.
	ErrStepsNotSequential = errs.NewRuleViolationError("StepsNotSequential")
	// ErrPreviousStepOpen is returned by AddStep while the last step has not ended.
	ErrPreviousStepOpen = errs.NewTransitionError("PreviousStepOpen")
	// ErrAlreadyEnded is returned by EndStep for a step that already has an end time.
	ErrAlreadyEnded = errs.NewTransitionError("AlreadyEnded")
	// ErrCannotDelete is returned when deleting an order that has left Draft.
	ErrCannotDelete = errs.NewTransitionError("CannotDelete")
)

// Params holds the caller-supplied attributes of a new mix order.
type Params struct {
	TenantID     kernel.UUID
	OrderNumber  string
	Type         Type
	RecipeID     kernel.UUID
	TargetQtyKg  float64
	PlannedAt    time.Time
	Location     *kernel.GeoPoint
	CustomerID   *kernel.UUID
	MobileUnitID *kernel.UUID
	Notes        string
	CreatedBy    string
}

// State is the full persisted state of a mix order, used by Restore.
type State struct {
	Params

	ID        kernel.UUID
	Status    Status
	Steps     []Step
	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy string
	Version   int
}

// MixOrder is the aggregate root of a production run.
type MixOrder struct {
	id           kernel.UUID
	tenantID     kernel.UUID
	orderNumber  string
	orderType    Type
	recipeID     kernel.UUID
	targetQtyKg  float64
	plannedAt    time.Time
	location     *kernel.GeoPoint
	customerID   *kernel.UUID
	mobileUnitID *kernel.UUID
	status       Status
	notes        string
	steps        []Step
	createdAt    time.Time
	updatedAt    time.Time
	createdBy    string
	updatedBy    string
	version      int
	guard        guard.ConstructorGuard
}

// NewMixOrder creates a Draft order with a generated identifier.
func NewMixOrder(ids kernel.IDGenerator, clock kernel.Clock, p Params) (MixOrder, error) {
	now := clock.Now()
	return build(State{
		Params:    p,
		ID:        ids.NewID(),
		Status:    Draft,
		CreatedAt: now,
		UpdatedAt: now,
		UpdatedBy: p.CreatedBy,
		Version:   1,
	})
}

// Restore rebuilds a mix order from persisted state, re-checking every invariant.
func Restore(s State) (MixOrder, error) {
	return build(s)
}

func build(s State) (MixOrder, error) {
	o := MixOrder{
		orderNumber: strings.TrimSpace(s.OrderNumber),
		targetQtyKg: s.TargetQtyKg,
		plannedAt:   kernel.NormalizeTime(s.PlannedAt),
		location:    s.Location,
		customerID:  s.CustomerID,
		notes:       s.Notes,
		steps:       append(make([]Step, 0, len(s.Steps)), s.Steps...),
		createdAt:   kernel.NormalizeTime(s.CreatedAt),
		updatedAt:   kernel.NormalizeTime(s.UpdatedAt),
		createdBy:   s.CreatedBy,
		updatedBy:   s.UpdatedBy,
		version:     s.Version,
		guard:       guard.NewConstructorGuard(),
	}
	o.id, o.tenantID, o.recipeID = s.ID, s.TenantID, s.RecipeID
	o.orderType, o.status, o.mobileUnitID = s.Type, s.Status, s.MobileUnitID

	if err := o.validate(); err != nil {
		return MixOrder{}, err
	}
	return o, nil
}

func (o MixOrder) validate() error {
	var errList []error
	errList = append(errList, o.id.Validate(), o.tenantID.Validate(), o.recipeID.Validate())
	if o.orderNumber == "" {
		errList = append(errList, errs.NewValueIsRequiredError("orderNumber"))
	}
	errList = append(errList, o.orderType.Validate(), o.status.Validate())
	errList = append(errList, kernel.ValidatePositive("targetQtyKg", o.targetQtyKg))
	if o.plannedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("plannedAt"))
	}
	if o.location != nil {
		errList = append(errList, o.location.Validate())
	}
	if o.customerID != nil {
		errList = append(errList, o.customerID.Validate())
	}
	if o.mobileUnitID != nil {
		errList = append(errList, o.mobileUnitID.Validate())
	}
	if o.orderType == Mobile {
		if o.location == nil {
			errList = append(errList, errs.NewRuleViolationErrorWithCause(
				ErrMobileLocationRequired.Rule, errors.New("mobile orders require a site location")))
		}
		if o.mobileUnitID == nil {
			errList = append(errList, errs.NewRuleViolationErrorWithCause(
				ErrMobileUnitRequired.Rule, errors.New("mobile orders require a mobile unit")))
		}
	}
	errList = append(errList, o.validateSteps())
	return errors.Join(errList...)
}

func (o MixOrder) validateSteps() error {
	for i, s := range o.steps {
		if err := s.Validate(); err != nil {
			return err
		}
		if i < len(o.steps)-1 && !s.IsEnded() {
			return errs.NewRuleViolationErrorWithCause(
				ErrStepsNotSequential.Rule, fmt.Errorf("step %d is still open but followed by step %d", i, i+1))
		}
	}
	return nil
}

// Validate ensures the MixOrder was created through NewMixOrder or Restore.
func (o MixOrder) Validate() error {
	return o.guard.Validate(ErrMixOrderIsNotConstructed)
}

func (o MixOrder) IsEqual(other MixOrder) bool {
	return o.id.IsEqual(other.id)
}

func (o MixOrder) ID() kernel.UUID {
	return o.id
}

func (o MixOrder) TenantID() kernel.UUID {
	return o.tenantID
}

func (o MixOrder) OrderNumber() string {
	return o.orderNumber
}

func (o MixOrder) Type() Type {
	return o.orderType
}

func (o MixOrder) RecipeID() kernel.UUID {
	return o.recipeID
}

func (o MixOrder) TargetQtyKg() float64 {
	return o.targetQtyKg
}

func (o MixOrder) PlannedAt() time.Time {
	return o.plannedAt
}

func (o MixOrder) Location() *kernel.GeoPoint {
	return o.location
}

func (o MixOrder) CustomerID() *kernel.UUID {
	return o.customerID
}

func (o MixOrder) MobileUnitID() *kernel.UUID {
	return o.mobileUnitID
}

func (o MixOrder) Status() Status {
	return o.status
}

func (o MixOrder) Notes() string {
	return o.notes
}

func (o MixOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o MixOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o MixOrder) CreatedBy() string {
	return o.createdBy
}

func (o MixOrder) UpdatedBy() string {
	return o.updatedBy
}

func (o MixOrder) Version() int {
	return o.version
}

func (o MixOrder) IsMobile() bool {
	return o.orderType == Mobile
}

func (o MixOrder) IsTerminal() bool {
	return o.status.IsTerminal()
}

// Steps returns a copy of the step log in execution order.
func (o MixOrder) Steps() []Step {
	return append([]Step(nil), o.steps...)
}

// Stage moves a Draft order to Staged.
func (o MixOrder) Stage() (MixOrder, error) {
	return o.withStatus(Status.Stage, "")
}

// Start moves a Staged order to Running.
func (o MixOrder) Start() (MixOrder, error) {
	return o.withStatus(Status.Start, "")
}

// Hold pauses a Running or Staged order; a non-empty reason is appended to the notes.
func (o MixOrder) Hold(reason string) (MixOrder, error) {
	return o.withStatus(Status.Hold, noteLine("HOLD", reason))
}

// Resume continues a held order.
func (o MixOrder) Resume() (MixOrder, error) {
	return o.withStatus(Status.Resume, "")
}

// Complete finishes a Running order.
func (o MixOrder) Complete() (MixOrder, error) {
	return o.withStatus(Status.Complete, "")
}

// Abort cancels any non-terminal order; a non-empty reason is appended to the notes.
func (o MixOrder) Abort(reason string) (MixOrder, error) {
	return o.withStatus(Status.Abort, noteLine("ABORTED", reason))
}

// AddStep appends a step. The previous step must have ended first.
func (o MixOrder) AddStep(step Step) (MixOrder, error) {
	if err := errors.Join(o.Validate(), step.Validate()); err != nil {
		return MixOrder{}, err
	}
	if n := len(o.steps); n > 0 && !o.steps[n-1].IsEnded() {
		return MixOrder{}, errs.NewTransitionErrorFor(ErrPreviousStepOpen.Name, "addStep", fmt.Sprintf("step %d open", n-1))
	}

	next := o.clone()
	next.steps = append(next.steps, step)
	return next.revalidated()
}

// UpdateStep replaces the fields set in patch on the step at index.
func (o MixOrder) UpdateStep(index int, patch StepPatch) (MixOrder, error) {
	if err := o.checkStepIndex(index); err != nil {
		return MixOrder{}, err
	}
	updated, err := o.steps[index].apply(patch)
	if err != nil {
		return MixOrder{}, err
	}

	next := o.clone()
	next.steps[index] = updated
	return next.revalidated()
}

// EndStep closes the step at index, optionally recording its actuals.
func (o MixOrder) EndStep(index int, endedAt time.Time, actuals *Actuals) (MixOrder, error) {
	if err := o.checkStepIndex(index); err != nil {
		return MixOrder{}, err
	}
	if o.steps[index].IsEnded() {
		return MixOrder{}, errs.NewTransitionErrorFor(ErrAlreadyEnded.Name, "endStep", fmt.Sprintf("step %d ended", index))
	}
	return o.UpdateStep(index, StepPatch{EndedAt: &endedAt, Actuals: actuals})
}

// CheckDeletable fails unless the order is still a Draft.
func (o MixOrder) CheckDeletable() error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.status != Draft {
		return errs.NewTransitionErrorFor(ErrCannotDelete.Name, "delete", o.status.String())
	}
	return nil
}

// Touch records who changed the order and when.
func (o MixOrder) Touch(at time.Time, actor string) (MixOrder, error) {
	if err := o.Validate(); err != nil {
		return MixOrder{}, err
	}
	next := o.clone()
	next.updatedAt = kernel.NormalizeTime(at)
	if actor != "" {
		next.updatedBy = actor
	}
	return next, nil
}

// Duration spans from the first step's start to the last step's end, or to now
// while the last step is still open. Orders without steps have zero duration.
func (o MixOrder) Duration(now time.Time) time.Duration {
	if len(o.steps) == 0 {
		return 0
	}
	end := now
	if last := o.steps[len(o.steps)-1]; last.IsEnded() {
		end = *last.endedAt
	}
	return end.Sub(o.steps[0].startedAt)
}

// TotalMassKg sums the recorded mass actuals of all steps.
func (o MixOrder) TotalMassKg() float64 {
	var total float64
	for _, s := range o.steps {
		if s.actuals != nil && s.actuals.MassKg != nil {
			total += *s.actuals.MassKg
		}
	}
	return total
}

// TotalEnergyKWh sums the recorded energy actuals of all steps.
func (o MixOrder) TotalEnergyKWh() float64 {
	var total float64
	for _, s := range o.steps {
		if s.actuals != nil && s.actuals.EnergyKWh != nil {
			total += *s.actuals.EnergyKWh
		}
	}
	return total
}

func (o MixOrder) ActiveSteps() []Step {
	return o.filterSteps(false)
}

func (o MixOrder) CompletedSteps() []Step {
	return o.filterSteps(true)
}

func (o MixOrder) filterSteps(ended bool) []Step {
	out := make([]Step, 0, len(o.steps))
	for _, s := range o.steps {
		if s.IsEnded() == ended {
			out = append(out, s)
		}
	}
	return out
}

func (o MixOrder) withStatus(transition func(Status) (Status, error), note string) (MixOrder, error) {
	if err := o.Validate(); err != nil {
		return MixOrder{}, err
	}
	status, err := transition(o.status)
	if err != nil {
		return MixOrder{}, err
	}

	next := o.clone()
	next.status = status
	next.notes = appendNote(next.notes, note)
	return next, nil
}

func (o MixOrder) checkStepIndex(index int) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if index < 0 || index >= len(o.steps) {
		return errs.NewValueIsOutOfRangeError("stepIndex", index, 0, len(o.steps)-1)
	}
	return nil
}

func (o MixOrder) revalidated() (MixOrder, error) {
	if err := o.validate(); err != nil {
		return MixOrder{}, err
	}
	return o, nil
}

// clone copies the step slice so the receiver never shares backing storage with the result.
func (o MixOrder) clone() MixOrder {
	c := o
	c.steps = append(make([]Step, 0, len(o.steps)+1), o.steps...)
	return c
}

func noteLine(prefix, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ""
	}
	return prefix + ": " + reason
}

func appendNote(notes, line string) string {
	switch {
	case line == "":
		return notes
	case notes == "":
		return line
	default:
		return notes + "\n" + line
	}
}
