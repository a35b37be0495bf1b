package kernel

import "errors"

// ErrDefaultConstructorGuard is the default error returned by
// ConstructorGuard.Validate when a nil error is passed as the validation
// error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures domain entities and value objects are only created
// through their designated constructor functions. The guard holds a flag that
// is set only by NewConstructorGuard, so any zero-value struct embedding it
// fails validation.
//
// Example usage:
//
//	type Money struct {
//	    amount decimal.Decimal
//	    guard  ConstructorGuard
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns validationError for zero-value objects, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
