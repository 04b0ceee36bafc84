// Package errs provides standardized error types for the courier tracking
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers the failure taxonomy of the delivery lifecycle:
//   - ObjectNotFoundError: a referenced delivery, rider, or actor does not exist
//   - ValueIsInvalidError: a supplied value fails validation
//   - ValueIsRequiredError: a required value is missing
//   - OperationForbiddenError: the actor lacks the capability or assignment
//     required for the requested operation
//   - VersionConflictError: a concurrent update changed an object between
//     read and conditional write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Illegal status transitions carry domain data (the set of allowed target
// statuses) and therefore live in the delivery domain package rather than here.
package errs
