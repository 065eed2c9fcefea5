// Package errs holds the error vocabulary shared by the domain, the use cases
// and the adapters.
//
// Every type wraps one sentinel, so callers branch with errors.Is and the HTTP
// adapter maps the sentinel to a status code:
//
//	ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange  -> 400
//	ErrRuleViolation                                             -> 400
//	ErrObjectNotFound                                            -> 404
//	ErrVersionIsInvalid, ErrInvalidTransition                    -> 409
//
// Constructors come in pairs, with and without a cause.
//
// RuleViolationError and TransitionError carry a name and implement Is, so a
// detailed error still matches the bare value a domain package declares:
//
//	var ErrMassBalanceViolation = errs.NewRuleViolationError("MassBalanceViolation")
//
//	errors.Is(errs.NewRuleViolationErrorWithCause("MassBalanceViolation", cause), ErrMassBalanceViolation) // true
package errs
