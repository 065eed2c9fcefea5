package mixorder

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of a mix order.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Draft
	Staged
	Running
	Hold
	Completed
	Aborted
)

// ErrInvalidTransition is returned for any lifecycle move the current status does not allow.
var ErrInvalidTransition = errs.NewTransitionError("InvalidTransition")

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "Draft",
		Staged:    "Staged",
		Running:   "Running",
		Hold:      "Hold",
		Completed: "Completed",
		Aborted:   "Aborted",
	}
}

// ParseStatus maps the persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s <= Unknown || s > Aborted {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Aborted
}

// Stage moves Draft -> Staged.
func (s Status) Stage() (Status, error) {
	if s != Draft {
		return 0, s.invalid("stage")
	}
	return Staged, nil
}

// Start moves Staged -> Running.
func (s Status) Start() (Status, error) {
	if s != Staged {
		return 0, s.invalid("start")
	}
	return Running, nil
}

// Hold pauses a Running or Staged order.
func (s Status) Hold() (Status, error) {
	if s != Running && s != Staged {
		return 0, s.invalid("hold")
	}
	return Hold, nil
}

// Resume moves Hold -> Running.
func (s Status) Resume() (Status, error) {
	if s != Hold {
		return 0, s.invalid("resume")
	}
	return Running, nil
}

// Complete moves Running -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Running {
		return 0, s.invalid("complete")
	}
	return Completed, nil
}

// Abort is allowed from every non-terminal status.
func (s Status) Abort() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return 0, s.invalid("abort")
	}
	return Aborted, nil
}

func (s Status) invalid(operation string) error {
	return errs.NewTransitionErrorFor(ErrInvalidTransition.Name, operation, s.String())
}
