package errs

// ExecutionError wraps any failure raised while running a database query:
// connectivity, query syntax or runtime errors, timeouts.
//
// Callers are not expected to tell the causes apart. Error() returns the
// underlying message unchanged so it can be surfaced as is.
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
