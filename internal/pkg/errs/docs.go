// Package errs provides standardized error types for the ecommerce application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The taxonomy covers the order lifecycle's failure modes:
//   - ObjectNotFoundError: For when a user, product, order or address is absent
//   - ValueIsInvalidError / ValueIsRequiredError: For validation failures
//   - InvalidStateError: For operations illegal in the entity's current status
//   - UnauthorizedError: For ownership mismatches
//   - InsufficientStockError: For reservations exceeding available quantity
//   - GatewayError: For payment charge failures, declined and transient
//     distinguished so callers can decide whether a retry is safe
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error classification via errors.Is
package errs
