// Package errs provides the error taxonomy shared by the domain model,
// the use case handlers and the HTTP layer.
//
// Error types map to how callers react to them:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     user-correctable input problems, rejected with a 400
//   - ObjectNotFoundError: a missing order, product, template or supplier,
//     rejected with a 404
//   - StateTransitionError: an illegal status edge or a role that may not
//     take it, rejected with a 400
//   - VersionIsInvalidError: stale aggregate state
//
// Each type follows the same pattern: a sentinel error variable
// (e.g. ErrValueIsRequired), a struct carrying the details, constructors
// with and without a cause, and Error/Unwrap methods so errors.Is works
// against the sentinel regardless of wrapping depth.
package errs
