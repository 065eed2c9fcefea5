package mobilerun

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

// CleaningStalenessWindow is how recently a cleaning must have finished for
// a same-category changeover to skip cleaning.
const CleaningStalenessWindow = 24 * time.Hour

var (
	ErrMobileRunIsNotConstructed = errors.New("MobileRun must be created via NewMobileRun or Restore")

	ErrInvalidRunTiming       = errs.NewRuleViolationError("InvalidRunTiming")
	ErrMultipleActiveSequence = errs.NewRuleViolationError("MultipleActiveSequences")
	ErrDuplicateSequenceID    = errs.NewRuleViolationError("DuplicateCleaningSequence")

	ErrAlreadyFinished      = errs.NewTransitionError("AlreadyFinished")
	ErrActiveSequenceExists = errs.NewTransitionError("ActiveSequenceExists")
	ErrSequenceNotFound     = errs.NewTransitionError("SequenceNotFound")
	ErrAlreadyEnded         = errs.NewTransitionError("AlreadyEnded")
)

// Site is the customer location the unit is deployed to.
type Site struct {
	CustomerID kernel.UUID
	Location   kernel.GeoPoint
}

func (s Site) validate() error {
	return errors.Join(s.CustomerID.Validate(), s.Location.Validate())
}

// Params holds the caller-supplied attributes of a new run.
type Params struct {
	TenantID     kernel.UUID
	MobileUnitID kernel.UUID
	VehicleID    *kernel.UUID
	OperatorID   kernel.UUID
	Site         Site
	PowerSource  PowerSource
	Calibration  CalibrationCheck
	StartAt      time.Time
}

// State is the full persisted state of a run.
type State struct {
	Params

	ID                kernel.UUID
	EndAt             *time.Time
	CleaningSequences []CleaningSequence
	Version           int
}

// MobileRun is the aggregate root of one deployment.
type MobileRun struct {
	id                kernel.UUID
	tenantID          kernel.UUID
	mobileUnitID      kernel.UUID
	vehicleID         *kernel.UUID
	operatorID        kernel.UUID
	site              Site
	powerSource       PowerSource
	calibration       CalibrationCheck
	startAt           time.Time
	endAt             *time.Time
	cleaningSequences []CleaningSequence
	version           int
	guard             guard.ConstructorGuard
}

// NewMobileRun starts a run. The calibration must be dated no later than now
// and every instrument must have passed.
func NewMobileRun(ids kernel.IDGenerator, clock kernel.Clock, p Params) (MobileRun, error) {
	now := clock.Now()
	if err := p.Calibration.Validate(now); err != nil {
		return MobileRun{}, err
	}
	if !p.Calibration.IsValid() {
		return MobileRun{}, errs.NewRuleViolationErrorWithCause(ErrCalibrationInvalid.Rule,
			fmt.Errorf("calibration failed for: %s", p.Calibration.failedInstruments()))
	}
	if p.StartAt.IsZero() {
		p.StartAt = now
	}
	return build(State{Params: p, ID: ids.NewID(), Version: 1})
}

// Restore rebuilds a run from persisted state. The calibration must not be
// dated after now, but a failed calibration is accepted since it may have been
// recorded after the run started.
func Restore(s State, now time.Time) (MobileRun, error) {
	if err := s.Calibration.Validate(now); err != nil {
		return MobileRun{}, err
	}
	return build(s)
}

func build(s State) (MobileRun, error) {
	r := MobileRun{
		id:                s.ID,
		tenantID:          s.TenantID,
		mobileUnitID:      s.MobileUnitID,
		vehicleID:         s.VehicleID,
		operatorID:        s.OperatorID,
		site:              s.Site,
		powerSource:       s.PowerSource.orDefault(),
		calibration:       s.Calibration.normalized(),
		startAt:           kernel.NormalizeTime(s.StartAt),
		endAt:             kernel.NormalizeOptionalTime(s.EndAt),
		cleaningSequences: cloneSequences(s.CleaningSequences),
		version:           s.Version,
		guard:             guard.NewConstructorGuard(),
	}
	if err := r.validate(); err != nil {
		return MobileRun{}, err
	}
	return r, nil
}

func (r MobileRun) validate() error {
	var errList []error
	errList = append(errList,
		r.id.Validate(),
		r.tenantID.Validate(),
		r.mobileUnitID.Validate(),
		r.operatorID.Validate(),
		r.site.validate(),
		r.powerSource.Validate(),
	)
	if r.vehicleID != nil {
		errList = append(errList, r.vehicleID.Validate())
	}
	if r.calibration.Date.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("calibrationCheck.date"))
	}
	if r.startAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("startAt"))
	} else if r.endAt != nil && !r.endAt.After(r.startAt) {
		errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrInvalidRunTiming.Rule,
			fmt.Errorf("endAt %s is not after startAt %s", r.endAt.Format(time.RFC3339), r.startAt.Format(time.RFC3339))))
	}

	active := 0
	seen := make(map[kernel.UUID]struct{}, len(r.cleaningSequences))
	for _, seq := range r.cleaningSequences {
		errList = append(errList, seq.Validate())
		if seq.IsActive() {
			active++
		}
		if _, dup := seen[seq.id]; dup {
			errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrDuplicateSequenceID.Rule,
				fmt.Errorf("cleaning sequence %s is recorded twice", seq.id)))
		}
		seen[seq.id] = struct{}{}
	}
	if active > 1 {
		errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrMultipleActiveSequence.Rule,
			fmt.Errorf("%d cleaning sequences are open", active)))
	}
	return errors.Join(errList...)
}

func (r MobileRun) Validate() error {
	return r.guard.Validate(ErrMobileRunIsNotConstructed)
}

func (r MobileRun) IsEqual(other MobileRun) bool {
	return r.id.IsEqual(other.id)
}

func (r MobileRun) ID() kernel.UUID {
	return r.id
}

func (r MobileRun) TenantID() kernel.UUID {
	return r.tenantID
}

func (r MobileRun) MobileUnitID() kernel.UUID {
	return r.mobileUnitID
}

func (r MobileRun) VehicleID() *kernel.UUID {
	return r.vehicleID
}

func (r MobileRun) OperatorID() kernel.UUID {
	return r.operatorID
}

func (r MobileRun) Site() Site {
	return r.site
}

func (r MobileRun) PowerSource() PowerSource {
	return r.powerSource
}

func (r MobileRun) CalibrationCheck() CalibrationCheck {
	return r.calibration
}

func (r MobileRun) StartAt() time.Time {
	return r.startAt
}

func (r MobileRun) EndAt() *time.Time {
	return kernel.NormalizeOptionalTime(r.endAt)
}

func (r MobileRun) Version() int {
	return r.version
}

// CleaningSequences returns the log in the order sequences were added.
func (r MobileRun) CleaningSequences() []CleaningSequence {
	return cloneSequences(r.cleaningSequences)
}

// IsActive reports whether the run has not finished yet.
func (r MobileRun) IsActive() bool {
	return r.endAt == nil
}

// Finish closes an active run.
func (r MobileRun) Finish(endAt time.Time) (MobileRun, error) {
	if err := r.Validate(); err != nil {
		return MobileRun{}, err
	}
	if !r.IsActive() {
		return MobileRun{}, errs.NewTransitionErrorFor(ErrAlreadyFinished.Name, "finish",
			"finished at "+r.endAt.Format(time.RFC3339))
	}
	next := r.clone()
	next.endAt = kernel.NormalizeOptionalTime(&endAt)
	return next.revalidated()
}

// UpdateCalibrationCheck replaces the calibration record. Past operations are not re-validated.
func (r MobileRun) UpdateCalibrationCheck(check CalibrationCheck, now time.Time) (MobileRun, error) {
	if err := errors.Join(r.Validate(), check.Validate(now)); err != nil {
		return MobileRun{}, err
	}
	next := r.clone()
	next.calibration = check.normalized()
	return next.revalidated()
}

// AddCleaningSequence appends a sequence. It fails while another sequence is still open.
func (r MobileRun) AddCleaningSequence(seq CleaningSequence) (MobileRun, error) {
	if err := errors.Join(r.Validate(), seq.Validate()); err != nil {
		return MobileRun{}, err
	}
	if open, ok := r.activeSequence(); ok {
		return MobileRun{}, errs.NewTransitionErrorFor(ErrActiveSequenceExists.Name, "addCleaningSequence",
			fmt.Sprintf("sequence %s open since %s", open.id, open.startedAt.Format(time.RFC3339)))
	}
	if slices.ContainsFunc(r.cleaningSequences, func(s CleaningSequence) bool { return s.id.IsEqual(seq.id) }) {
		return MobileRun{}, errs.NewRuleViolationErrorWithCause(ErrDuplicateSequenceID.Rule,
			fmt.Errorf("cleaning sequence %s is already recorded", seq.id))
	}
	next := r.clone()
	next.cleaningSequences = append(next.cleaningSequences, seq)
	return next.revalidated()
}

// EndCleaningSequence closes the sequence with the given id. Non-empty notes replace the stored ones.
func (r MobileRun) EndCleaningSequence(id kernel.UUID, endedAt time.Time, notes string) (MobileRun, error) {
	if err := r.Validate(); err != nil {
		return MobileRun{}, err
	}
	idx := slices.IndexFunc(r.cleaningSequences, func(s CleaningSequence) bool { return s.id.IsEqual(id) })
	if idx < 0 {
		return MobileRun{}, errs.NewTransitionErrorFor(ErrSequenceNotFound.Name, "endCleaningSequence",
			fmt.Sprintf("no sequence %s", id))
	}
	if !r.cleaningSequences[idx].IsActive() {
		return MobileRun{}, errs.NewTransitionErrorFor(ErrAlreadyEnded.Name, "endCleaningSequence",
			fmt.Sprintf("sequence %s ended", id))
	}

	p := r.cleaningSequences[idx].params()
	p.EndedAt = &endedAt
	if strings.TrimSpace(notes) != "" {
		p.Notes = notes
	}
	ended, err := NewCleaningSequence(p)
	if err != nil {
		return MobileRun{}, err
	}

	next := r.clone()
	next.cleaningSequences[idx] = ended
	return next.revalidated()
}

// ValidateCleaningRequired reports whether the unit must be cleaned before the
// next recipe: always after a medicated recipe is followed by a non-medicated
// one, and whenever no cleaning finished within CleaningStalenessWindow before now.
func (r MobileRun) ValidateCleaningRequired(prevMedicated, currMedicated bool, now time.Time) bool {
	if prevMedicated && !currMedicated {
		return true
	}
	cutoff := now.Add(-CleaningStalenessWindow)
	for _, s := range r.cleaningSequences {
		if s.endedAt != nil && !s.endedAt.Before(cutoff) {
			return false
		}
	}
	return true
}

// RequiredCleaningType returns the procedure a changeover needs.
func (r MobileRun) RequiredCleaningType(prevMedicated, currMedicated bool) CleaningType {
	return RequiredCleaningType(prevMedicated, currMedicated)
}

// RequiredCleaningType returns WetClean for a medicated to non-medicated
// changeover and Flush for every other changeover.
func RequiredCleaningType(prevMedicated, currMedicated bool) CleaningType {
	if prevMedicated && !currMedicated {
		return WetClean
	}
	return Flush
}

// DurationHours measures the run until endAt, or until now while active.
func (r MobileRun) DurationHours(now time.Time) float64 {
	end := now
	if r.endAt != nil {
		end = *r.endAt
	}
	return end.Sub(r.startAt).Hours()
}

// TotalFlushMassKg sums the flush material of Flush sequences.
func (r MobileRun) TotalFlushMassKg() float64 {
	var total float64
	for _, s := range r.cleaningSequences {
		if s.cleaningType == Flush && s.flushMassKg != nil {
			total += *s.flushMassKg
		}
	}
	return total
}

func (r MobileRun) ActiveCleaningSequences() []CleaningSequence {
	return r.filterSequences(true)
}

func (r MobileRun) CompletedCleaningSequences() []CleaningSequence {
	return r.filterSequences(false)
}

// CleaningHistory returns every sequence, most recently started first.
func (r MobileRun) CleaningHistory() []CleaningSequence {
	history := cloneSequences(r.cleaningSequences)
	slices.SortStableFunc(history, func(a, b CleaningSequence) int {
		return b.startedAt.Compare(a.startedAt)
	})
	return history
}

// LastCompletedCleaning returns the sequence that ended most recently.
func (r MobileRun) LastCompletedCleaning() (CleaningSequence, bool) {
	var (
		last  CleaningSequence
		found bool
	)
	for _, s := range r.cleaningSequences {
		if s.endedAt != nil && (!found || s.endedAt.After(*last.endedAt)) {
			last, found = s, true
		}
	}
	return last, found
}

func (r MobileRun) activeSequence() (CleaningSequence, bool) {
	for _, s := range r.cleaningSequences {
		if s.IsActive() {
			return s, true
		}
	}
	return CleaningSequence{}, false
}

func (r MobileRun) filterSequences(active bool) []CleaningSequence {
	var out []CleaningSequence
	for _, s := range r.cleaningSequences {
		if s.IsActive() == active {
			out = append(out, s)
		}
	}
	return out
}

func (r MobileRun) revalidated() (MobileRun, error) {
	if err := r.validate(); err != nil {
		return MobileRun{}, err
	}
	return r, nil
}

func (r MobileRun) clone() MobileRun {
	c := r
	c.endAt = kernel.NormalizeOptionalTime(r.endAt)
	c.cleaningSequences = cloneSequences(r.cleaningSequences)
	return c
}

func cloneSequences(s []CleaningSequence) []CleaningSequence {
	if len(s) == 0 {
		return nil
	}
	return append([]CleaningSequence(nil), s...)
}
