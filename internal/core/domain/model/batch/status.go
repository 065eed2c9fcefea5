package batch

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status is the quality state of a batch.
type Status int

const (
	Unknown Status = iota
	Quarantine
	Released
	Rejected
)

var statusNames = map[Status]string{
	Quarantine: "Quarantine",
	Released:   "Released",
	Rejected:   "Rejected",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid batch status", s))
}

func (s Status) IsTerminal() bool {
	return s == Rejected
}
