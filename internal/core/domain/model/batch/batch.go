package batch

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// MassBalanceTolerance is the allowed over-production factor on consumed input mass.
const MassBalanceTolerance = 1.05

const (
	rejectedLabel    = "REJECTED"
	quarantinedLabel = "QUARANTINED"
)

var (
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or Restore")

	ErrMassBalanceViolation     = errs.NewRuleViolationError("MassBalanceViolation")
	ErrInvalidBatchNumberFormat = errs.NewRuleViolationError("InvalidBatchNumberFormat")
	ErrDuplicateIngredientLot   = errs.NewRuleViolationError("DuplicateIngredientLot")
	ErrDuplicateLotNumber       = errs.NewRuleViolationError("DuplicateLotNumber")
	ErrInvalidBatchTiming       = errs.NewRuleViolationError("InvalidBatchTiming")
	ErrSelfParent               = errs.NewRuleViolationError("SelfParentBatch")
	ErrAuditLabelIsReserved     = errs.NewRuleViolationError("AuditLabelIsReserved")

	ErrCannotRelease    = errs.NewTransitionError("CannotRelease")
	ErrCannotReject     = errs.NewTransitionError("CannotReject")
	ErrCannotQuarantine = errs.NewTransitionError("CannotQuarantine")
	ErrAlreadyCompleted = errs.NewTransitionError("AlreadyCompleted")
)

// Params holds the caller-supplied attributes of a new batch.
type Params struct {
	TenantID      kernel.UUID
	BatchNumber   string
	MixOrderID    kernel.UUID
	ProducedQtyKg float64
	StartAt       time.Time
	EndAt         *time.Time
	ParentBatches []kernel.UUID
	Labels        []string
	Inputs        []Input
	Outputs       []OutputLot
}

// State is the full persisted state of a batch.
type State struct {
	Params

	ID      kernel.UUID
	Status  Status
	Version int
}

// Batch is the aggregate root for produced material and its genealogy.
type Batch struct {
	id            kernel.UUID
	tenantID      kernel.UUID
	batchNumber   string
	mixOrderID    kernel.UUID
	producedQtyKg float64
	startAt       time.Time
	endAt         *time.Time
	status        Status
	parentBatches []kernel.UUID
	labels        []string
	inputs        []Input
	outputs       []OutputLot
	version       int
	guard         guard.ConstructorGuard
}

// NewBatch creates a batch in Quarantine.
func NewBatch(ids kernel.IDGenerator, p Params) (Batch, error) {
	return build(State{
		Params:  p,
		ID:      ids.NewID(),
		Status:  Quarantine,
		Version: 1,
	})
}

// Restore rebuilds a batch from persisted state, re-checking every invariant.
func Restore(s State) (Batch, error) {
	return build(s)
}

func build(s State) (Batch, error) {
	b := Batch{
		id:            s.ID,
		tenantID:      s.TenantID,
		batchNumber:   strings.TrimSpace(s.BatchNumber),
		mixOrderID:    s.MixOrderID,
		producedQtyKg: s.ProducedQtyKg,
		startAt:       kernel.NormalizeTime(s.StartAt),
		endAt:         kernel.NormalizeOptionalTime(s.EndAt),
		status:        s.Status,
		parentBatches: cloneSlice(s.ParentBatches),
		labels:        cloneStrings(s.Labels),
		inputs:        cloneSlice(s.Inputs),
		outputs:       cloneSlice(s.Outputs),
		version:       s.Version,
		guard:         guard.NewConstructorGuard(),
	}
	if err := b.validate(); err != nil {
		return Batch{}, err
	}
	return b, nil
}

func (b Batch) validate() error {
	var errList []error
	errList = append(errList,
		b.id.Validate(),
		b.tenantID.Validate(),
		b.mixOrderID.Validate(),
		validateNumber("batchNumber", b.batchNumber, ErrInvalidBatchNumberFormat),
		b.status.Validate(),
	)
	errList = append(errList, kernel.ValidatePositive("producedQtyKg", b.producedQtyKg))
	if b.startAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("startAt"))
	} else if b.endAt != nil && !b.endAt.After(b.startAt) {
		errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrInvalidBatchTiming.Rule,
			fmt.Errorf("endAt %s is not after startAt %s", b.endAt.Format(time.RFC3339), b.startAt.Format(time.RFC3339))))
	}
	for _, parent := range b.parentBatches {
		errList = append(errList, parent.Validate())
		if parent.IsEqual(b.id) {
			errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrSelfParent.Rule,
				fmt.Errorf("batch %s lists itself as parent", b.id)))
		}
	}
	errList = append(errList, b.validateInputs(), b.validateOutputs())
	if err := errors.Join(errList...); err != nil {
		return err
	}
	return b.checkMassBalance()
}

func (b Batch) validateInputs() error {
	seen := make(map[kernel.UUID]struct{}, len(b.inputs))
	for _, in := range b.inputs {
		if err := in.Validate(); err != nil {
			return err
		}
		if _, dup := seen[in.ingredientLotID]; dup {
			return errs.NewRuleViolationErrorWithCause(ErrDuplicateIngredientLot.Rule,
				fmt.Errorf("ingredient lot %s is already consumed by this batch", in.ingredientLotID))
		}
		seen[in.ingredientLotID] = struct{}{}
	}
	return nil
}

func (b Batch) validateOutputs() error {
	seen := make(map[string]struct{}, len(b.outputs))
	for _, out := range b.outputs {
		if err := out.Validate(); err != nil {
			return err
		}
		if _, dup := seen[out.lotNumber]; dup {
			return errs.NewRuleViolationErrorWithCause(ErrDuplicateLotNumber.Rule,
				fmt.Errorf("lot number %s is already produced by this batch", out.lotNumber))
		}
		seen[out.lotNumber] = struct{}{}
	}
	return nil
}

func (b Batch) checkMassBalance() error {
	in, out := b.TotalInputKg(), b.TotalOutputKg()
	if limit := in * MassBalanceTolerance; !kernel.IsFinite(limit) || !(out <= limit) {
		return errs.NewRuleViolationErrorWithCause(ErrMassBalanceViolation.Rule,
			fmt.Errorf("outputs %.3f kg exceed inputs %.3f kg by more than 5%% (limit %.3f kg)", out, in, limit))
	}
	return nil
}

func (b Batch) Validate() error {
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

func (b Batch) IsEqual(other Batch) bool {
	return b.id.IsEqual(other.id)
}

func (b Batch) ID() kernel.UUID {
	return b.id
}

func (b Batch) TenantID() kernel.UUID {
	return b.tenantID
}

func (b Batch) BatchNumber() string {
	return b.batchNumber
}

func (b Batch) MixOrderID() kernel.UUID {
	return b.mixOrderID
}

func (b Batch) ProducedQtyKg() float64 {
	return b.producedQtyKg
}

func (b Batch) StartAt() time.Time {
	return b.startAt
}

func (b Batch) EndAt() *time.Time {
	return kernel.NormalizeOptionalTime(b.endAt)
}

func (b Batch) Status() Status {
	return b.status
}

func (b Batch) Version() int {
	return b.version
}

func (b Batch) ParentBatches() []kernel.UUID {
	return cloneSlice(b.parentBatches)
}

func (b Batch) Labels() []string {
	return cloneStrings(b.labels)
}

func (b Batch) Inputs() []Input {
	return cloneSlice(b.inputs)
}

func (b Batch) Outputs() []OutputLot {
	return cloneSlice(b.outputs)
}

func (b Batch) HasLabel(label string) bool {
	return slices.Contains(b.labels, label)
}

// IsRework reports whether the batch was blended from or reworks other batches.
func (b Batch) IsRework() bool {
	return len(b.parentBatches) > 0
}

// IsCompleted reports whether production of the batch has finished.
func (b Batch) IsCompleted() bool {
	return b.endAt != nil
}

func (b Batch) CanRelease() bool {
	return b.status == Quarantine && b.endAt != nil
}

func (b Batch) CanReject() bool {
	return b.status != Rejected
}

func (b Batch) CanQuarantine() bool {
	return b.status == Released
}

func (b Batch) TotalInputKg() float64 {
	var total float64
	for _, in := range b.inputs {
		total += in.actualKg
	}
	return total
}

func (b Batch) TotalOutputKg() float64 {
	var total float64
	for _, out := range b.outputs {
		total += out.qtyKg
	}
	return total
}

// YieldPercent is output mass over input mass; zero when nothing was consumed.
func (b Batch) YieldPercent() float64 {
	in := b.TotalInputKg()
	if in == 0 {
		return 0
	}
	return b.TotalOutputKg() / in * 100
}

// Release frees a finished batch from Quarantine.
func (b Batch) Release() (Batch, error) {
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	if !b.CanRelease() {
		return Batch{}, errs.NewTransitionErrorFor(ErrCannotRelease.Name, "release", b.describeState())
	}
	next := b.clone()
	next.status = Released
	return next, nil
}

// Reject makes the batch terminally unusable and records a REJECTED label.
func (b Batch) Reject(reason string) (Batch, error) {
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	if !b.CanReject() {
		return Batch{}, errs.NewTransitionErrorFor(ErrCannotReject.Name, "reject", b.describeState())
	}
	next := b.clone()
	next.status = Rejected
	next.labels = append(next.labels, statusLabel(rejectedLabel, reason))
	return next, nil
}

// Quarantine recalls a Released batch and records a QUARANTINED label.
func (b Batch) Quarantine(reason string) (Batch, error) {
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	if !b.CanQuarantine() {
		return Batch{}, errs.NewTransitionErrorFor(ErrCannotQuarantine.Name, "quarantine", b.describeState())
	}
	next := b.clone()
	next.status = Quarantine
	next.labels = append(next.labels, statusLabel(quarantinedLabel, reason))
	return next, nil
}

// Complete records the end of production.
func (b Batch) Complete(endAt time.Time) (Batch, error) {
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	if b.endAt != nil {
		return Batch{}, errs.NewTransitionErrorFor(ErrAlreadyCompleted.Name, "complete", b.describeState())
	}
	next := b.clone()
	next.endAt = kernel.NormalizeOptionalTime(&endAt)
	return next.revalidated()
}

// AddInput records a consumed ingredient lot.
func (b Batch) AddInput(in Input) (Batch, error) {
	if err := errors.Join(b.Validate(), in.Validate()); err != nil {
		return Batch{}, err
	}
	for _, existing := range b.inputs {
		if existing.ingredientLotID.IsEqual(in.ingredientLotID) {
			return Batch{}, errs.NewRuleViolationErrorWithCause(ErrDuplicateIngredientLot.Rule,
				fmt.Errorf("ingredient lot %s is already consumed by this batch", in.ingredientLotID))
		}
	}
	next := b.clone()
	next.inputs = append(next.inputs, in)
	return next.revalidated()
}

// AddOutput records a produced lot.
func (b Batch) AddOutput(out OutputLot) (Batch, error) {
	if err := errors.Join(b.Validate(), out.Validate()); err != nil {
		return Batch{}, err
	}
	for _, existing := range b.outputs {
		if existing.lotNumber == out.lotNumber {
			return Batch{}, errs.NewRuleViolationErrorWithCause(ErrDuplicateLotNumber.Rule,
				fmt.Errorf("lot number %s is already produced by this batch", out.lotNumber))
		}
	}
	next := b.clone()
	next.outputs = append(next.outputs, out)
	return next.revalidated()
}

// AddLabel attaches a tag. Adding an existing tag returns an equal snapshot.
// REJECTED and QUARANTINED entries are written only by the status transitions.
func (b Batch) AddLabel(label string) (Batch, error) {
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return Batch{}, errs.NewValueIsRequiredError("label")
	}
	if isAuditLabel(label) {
		return Batch{}, errs.NewRuleViolationErrorWithCause(ErrAuditLabelIsReserved.Rule,
			fmt.Errorf("label %q is written by status transitions only", label))
	}
	next := b.clone()
	next.labels = appendUnique(next.labels, label)
	return next, nil
}

// RemoveLabel drops a tag if present. Status annotations stay for good.
func (b Batch) RemoveLabel(label string) (Batch, error) {
	if err := b.Validate(); err != nil {
		return Batch{}, err
	}
	if isAuditLabel(label) {
		return Batch{}, errs.NewRuleViolationErrorWithCause(ErrAuditLabelIsReserved.Rule,
			fmt.Errorf("label %q is part of the status history", label))
	}
	next := b.clone()
	next.labels = cloneStrings(slices.DeleteFunc(next.labels, func(l string) bool { return l == label }))
	return next, nil
}

// AddParentBatch links a source batch, marking this one as rework or blend.
func (b Batch) AddParentBatch(id kernel.UUID) (Batch, error) {
	if err := errors.Join(b.Validate(), id.Validate()); err != nil {
		return Batch{}, err
	}
	next := b.clone()
	if !slices.ContainsFunc(next.parentBatches, id.IsEqual) {
		next.parentBatches = append(next.parentBatches, id)
	}
	return next.revalidated()
}

func (b Batch) describeState() string {
	if b.endAt == nil {
		return b.status.String() + ", endAt unset"
	}
	return b.status.String() + ", endAt " + b.endAt.Format(time.RFC3339)
}

func (b Batch) revalidated() (Batch, error) {
	if err := b.validate(); err != nil {
		return Batch{}, err
	}
	return b, nil
}

// clone deep-copies every slice so the receiver never shares backing storage with the result.
func (b Batch) clone() Batch {
	c := b
	c.endAt = kernel.NormalizeOptionalTime(b.endAt)
	c.parentBatches = cloneSlice(b.parentBatches)
	c.labels = cloneStrings(b.labels)
	c.inputs = cloneSlice(b.inputs)
	c.outputs = cloneSlice(b.outputs)
	return c
}

func cloneSlice[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return append([]T(nil), s...)
}

func appendUnique(labels []string, label string) []string {
	if slices.Contains(labels, label) {
		return labels
	}
	return append(labels, label)
}

func isAuditLabel(label string) bool {
	for _, prefix := range []string{rejectedLabel, quarantinedLabel} {
		if label == prefix || strings.HasPrefix(label, prefix+":") {
			return true
		}
	}
	return false
}

func statusLabel(prefix, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return prefix
	}
	return prefix + ": " + reason
}
