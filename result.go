package hudu

import "fmt"

// Result holds exactly one of a success value or a failure error. Every
// high-level client method returns a Result instead of a bare (value, error)
// pair so that callers are forced to check which branch they are on before
// touching the payload.
//
// Construct results with Ok and Err; the zero value is not a valid Result.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a success value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err wraps a failure. A nil err is coerced into a non-nil placeholder so the
// "never both, never neither" invariant holds.
func Err[T any](err error) Result[T] {
	if err == nil {
		err = fmt.Errorf("hudu: failure result constructed with nil error")
	}
	return Result[T]{err: err}
}

// IsSuccess reports whether the result holds a value.
func (r Result[T]) IsSuccess() bool { return r.ok }

// IsFailure reports whether the result holds an error.
func (r Result[T]) IsFailure() bool { return !r.ok }

// Get returns the value and error in conventional Go form. Exactly one of the
// two is meaningful.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}

// Unwrap returns the success value. It panics when called on a failure; use
// IsSuccess or Get when the branch is not already known.
func (r Result[T]) Unwrap() T {
	if !r.ok {
		panic(fmt.Sprintf("hudu: Unwrap called on failure result: %v", r.err))
	}
	return r.value
}

// UnwrapErr returns the failure error. It panics when called on a success.
func (r Result[T]) UnwrapErr() error {
	if r.ok {
		panic("hudu: UnwrapErr called on success result")
	}
	return r.err
}
