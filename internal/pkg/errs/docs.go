// Package errs provides the error taxonomy shared by every layer of the shipping core.
// It implements a consistent pattern for error creation, formatting, and unwrapping.
//
// The package groups errors by the way a caller is expected to react:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input,
//     rejected before any state change
//   - PreconditionFailedError: the entity is in the wrong state for the requested operation
//   - ConflictError: the entity was modified concurrently; the caller may retry
//   - ObjectNotFoundError: a dangling reference
//   - InfrastructureError: the persistence layer failed
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrValueIsRequired) matched with errors.Is
//   - A struct type carrying the details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
package errs
