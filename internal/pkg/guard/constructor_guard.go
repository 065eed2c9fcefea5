// Package guard provides ConstructorGuard, a marker embedded in value objects,
// aggregates, commands and queries so that a zero-value struct can be told
// apart from one built by its constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field and set only by constructors.
//
//	type Lot struct {
//	    number string
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewLot(number string) (Lot, error) {
//	    return Lot{number: number, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (l Lot) Validate() error {
//	    return l.guard.Validate(ErrLotIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
