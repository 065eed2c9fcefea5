package mobilerun

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

// CleaningType orders cleaning procedures by thoroughness.
type CleaningType string

const (
	DryClean CleaningType = "DryClean"
	Vacuum   CleaningType = "Vacuum"
	Flush    CleaningType = "Flush"
	WetClean CleaningType = "WetClean"
)

func (c CleaningType) Validate() error {
	switch c {
	case DryClean, Vacuum, Flush, WetClean:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("cleaning type", fmt.Errorf("%q is not a valid cleaning type", string(c)))
}

var (
	ErrCleaningSequenceIsNotConstructed = errors.New("CleaningSequence must be created via NewCleaningSequence")
	ErrInvalidSequenceTiming            = errs.NewRuleViolationError("InvalidSequenceTiming")
)

// CleaningSequenceParams holds the attributes of a cleaning sequence.
type CleaningSequenceParams struct {
	ID              kernel.UUID
	Type            CleaningType
	StartedAt       time.Time
	EndedAt         *time.Time
	UsedMaterialSKU string
	FlushMassKg     *float64
	ValidatedBy     string
	Notes           string
}

// CleaningSequence is one cleaning procedure performed on the unit.
type CleaningSequence struct {
	id              kernel.UUID
	cleaningType    CleaningType
	startedAt       time.Time
	endedAt         *time.Time
	usedMaterialSKU string
	flushMassKg     *float64
	validatedBy     string
	notes           string
	guard           guard.ConstructorGuard
}

func NewCleaningSequence(p CleaningSequenceParams) (CleaningSequence, error) {
	var errList []error
	errList = append(errList, p.ID.Validate(), p.Type.Validate())
	if p.StartedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("startedAt"))
	} else if p.EndedAt != nil && !p.EndedAt.After(p.StartedAt) {
		errList = append(errList, errs.NewRuleViolationErrorWithCause(ErrInvalidSequenceTiming.Rule,
			fmt.Errorf("endedAt %s is not after startedAt %s",
				p.EndedAt.Format(time.RFC3339), p.StartedAt.Format(time.RFC3339))))
	}
	if p.FlushMassKg != nil {
		errList = append(errList, kernel.ValidateNonNegative("flushMassKg", *p.FlushMassKg))
	}
	if strings.TrimSpace(p.ValidatedBy) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("validatedBy"))
	}
	if err := errors.Join(errList...); err != nil {
		return CleaningSequence{}, err
	}

	var flushMass *float64
	if p.FlushMassKg != nil {
		m := *p.FlushMassKg
		flushMass = &m
	}
	return CleaningSequence{
		id:              p.ID,
		cleaningType:    p.Type,
		startedAt:       kernel.NormalizeTime(p.StartedAt),
		endedAt:         kernel.NormalizeOptionalTime(p.EndedAt),
		usedMaterialSKU: strings.TrimSpace(p.UsedMaterialSKU),
		flushMassKg:     flushMass,
		validatedBy:     strings.TrimSpace(p.ValidatedBy),
		notes:           p.Notes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (s CleaningSequence) Validate() error {
	return s.guard.Validate(ErrCleaningSequenceIsNotConstructed)
}

func (s CleaningSequence) ID() kernel.UUID {
	return s.id
}

func (s CleaningSequence) Type() CleaningType {
	return s.cleaningType
}

func (s CleaningSequence) StartedAt() time.Time {
	return s.startedAt
}

func (s CleaningSequence) EndedAt() *time.Time {
	return kernel.NormalizeOptionalTime(s.endedAt)
}

func (s CleaningSequence) UsedMaterialSKU() string {
	return s.usedMaterialSKU
}

func (s CleaningSequence) FlushMassKg() *float64 {
	if s.flushMassKg == nil {
		return nil
	}
	m := *s.flushMassKg
	return &m
}

func (s CleaningSequence) ValidatedBy() string {
	return s.validatedBy
}

func (s CleaningSequence) Notes() string {
	return s.notes
}

func (s CleaningSequence) IsActive() bool {
	return s.endedAt == nil
}

func (s CleaningSequence) params() CleaningSequenceParams {
	return CleaningSequenceParams{
		ID:              s.id,
		Type:            s.cleaningType,
		StartedAt:       s.startedAt,
		EndedAt:         s.EndedAt(),
		UsedMaterialSKU: s.usedMaterialSKU,
		FlushMassKg:     s.FlushMassKg(),
		ValidatedBy:     s.validatedBy,
		Notes:           s.notes,
	}
}
