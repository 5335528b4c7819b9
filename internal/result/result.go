// Package result holds a two-branch value used to chain fallible steps.
// A chain built with Bind stops at the first Failure and hands that
// failure, untouched, to the end of the chain.
package result

// Result is either a Success carrying a T or a Failure carrying an E.
// The zero value is a Failure with the zero E.
type Result[T any, E any] struct {
	value T
	code  E
	ok    bool
}

func Success[T any, E any](value T) Result[T, E] {
	return Result[T, E]{value: value, ok: true}
}

func Failure[T any, E any](code E) Result[T, E] {
	return Result[T, E]{code: code}
}

func (r Result[T, E]) IsSuccess() bool {
	return r.ok
}

// Value returns the success value and true, or the zero T and false.
func (r Result[T, E]) Value() (T, bool) {
	return r.value, r.ok
}

// Code returns the failure code and true, or the zero E and false.
func (r Result[T, E]) Code() (E, bool) {
	if r.ok {
		var zero E
		return zero, false
	}
	return r.code, true
}

// Map transforms a Success value. A Failure passes through unchanged.
func Map[T any, U any, E any](r Result[T, E], f func(T) U) Result[U, E] {
	if !r.ok {
		return Failure[U](r.code)
	}
	return Success[U, E](f(r.value))
}

// Bind runs f on a Success value. A Failure short-circuits and f is never called.
func Bind[T any, U any, E any](r Result[T, E], f func(T) Result[U, E]) Result[U, E] {
	if !r.ok {
		return Failure[U](r.code)
	}
	return f(r.value)
}

// Tap performs a side effect with a Success value and forwards r as is.
// f has no way to turn the chain into a Failure.
func Tap[T any, E any](r Result[T, E], f func(T)) Result[T, E] {
	if r.ok {
		f(r.value)
	}
	return r
}

// Match folds r into a single value.
func Match[T any, E any, R any](r Result[T, E], onSuccess func(T) R, onFailure func(E) R) R {
	if r.ok {
		return onSuccess(r.value)
	}
	return onFailure(r.code)
}
