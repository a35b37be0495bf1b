package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the application's error taxonomy. Concrete error types
// below unwrap to one of these, so callers classify failures with errors.Is
// without depending on the concrete type.
var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsRequired    = errors.New("value is required")
	ErrInvalidState       = errors.New("invalid state")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrGatewayDeclined    = errors.New("payment declined")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// sanitize strips newlines from values interpolated into error messages so a
// single error always renders as a single log line.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that an entity (user, product, order, address)
// could not be found by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given
// parameter name and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause such as a database error.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping the
// underlying validation failure.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value was not supplied.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError indicates that an operation is not permitted for the
// entity's current lifecycle status.
type InvalidStateError struct {
	Entity   string
	ID       any
	Current  string
	Expected string
}

// NewInvalidStateError creates an InvalidStateError naming the entity, its
// current status and the status the operation requires.
func NewInvalidStateError(entity string, id any, current, expected string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, ID: id, Current: current, Expected: expected}
}

func (e *InvalidStateError) Error() string {
	if e.ID == nil || e.ID == "" {
		return fmt.Sprintf("%s: %s is %s, expected %s",
			ErrInvalidState, e.Entity, e.Current, e.Expected)
	}
	return fmt.Sprintf("%s: %s %s is %s, expected %s",
		ErrInvalidState, e.Entity, sanitize(e.ID), e.Current, e.Expected)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// UnauthorizedError indicates an ownership mismatch: the acting user does not
// own the entity the operation targets.
type UnauthorizedError struct {
	Entity string
	ID     any
	UserID any
}

// NewUnauthorizedError creates an UnauthorizedError for the given entity and user.
func NewUnauthorizedError(entity string, id, userID any) *UnauthorizedError {
	return &UnauthorizedError{Entity: entity, ID: id, UserID: userID}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s %s does not belong to user %s",
		ErrUnauthorized, e.Entity, sanitize(e.ID), sanitize(e.UserID))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// InsufficientStockError indicates that a reservation asked for more units
// than the product has available. It names the product and the shortfall.
type InsufficientStockError struct {
	ProductName string
	ProductID   any
	Requested   int
	Available   int
}

// NewInsufficientStockError creates an InsufficientStockError for the given
// product and quantities.
func NewInsufficientStockError(productName string, productID any, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductName: productName,
		ProductID:   productID,
		Requested:   requested,
		Available:   available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s for product %s: requested %d, available %d",
		ErrInsufficientStock, sanitize(e.ProductName), e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// GatewayError reports a failed charge attempt. Transient distinguishes
// gateway outages (retryable by the caller) from hard declines (not
// retryable); the error unwraps accordingly so callers branch with errors.Is.
type GatewayError struct {
	Reason    string
	Transient bool
	Cause     error
}

// NewGatewayDeclinedError creates a GatewayError for a hard decline.
func NewGatewayDeclinedError(reason string, cause error) *GatewayError {
	return &GatewayError{Reason: reason, Cause: cause}
}

// NewGatewayUnavailableError creates a GatewayError for a transient gateway
// failure that the caller may retry.
func NewGatewayUnavailableError(reason string, cause error) *GatewayError {
	return &GatewayError{Reason: reason, Transient: true, Cause: cause}
}

func (e *GatewayError) Error() string {
	sentinel := ErrGatewayDeclined
	if e.Transient {
		sentinel = ErrGatewayUnavailable
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", sentinel, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", sentinel, e.Reason)
}

func (e *GatewayError) Unwrap() error {
	if e.Transient {
		return ErrGatewayUnavailable
	}
	return ErrGatewayDeclined
}
