// Package results carries the outcome of a service operation: either a success value or a
// domain failure. Infrastructure errors travel separately as a plain error.
package results

import "errors"

// OperationResult holds exactly one of Success or Failure when produced by the helpers below.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success value.
func SuccessResult[S any, F any](success S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &success}
}

// FailureResult wraps a domain failure.
func FailureResult[S any, F any](failure F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &failure}
}

func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}

// FailureError marks an error that came from a failure result once Unwrap has flattened it.
type FailureError struct {
	Err error
}

func (e *FailureError) Error() string { return e.Err.Error() }

func (e *FailureError) Unwrap() error { return e.Err }

// IsFailure reports whether err is a domain failure rather than an infrastructure error.
func IsFailure(err error) bool {
	var f *FailureError
	return errors.As(err, &f)
}

// Unwrap flattens an error-typed failure into a (value, error) pair. Failures come back
// wrapped in *FailureError.
func Unwrap[S any](r OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if r.IsFailure() {
		return zero, &FailureError{Err: *r.Failure}
	}
	if r.Success == nil {
		return zero, nil
	}
	return *r.Success, nil
}
