// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure a consistent JSON shape
// ({"detail": "..."}) and an HTTP status, so the client always
// receives a well-formed response.
//
//   - HTTPError carries the status and the client-facing detail.
//   - ExecutionError marks failures coming from the database collaborator.
//   - FieldError lists per-parameter validation problems.
package errs
