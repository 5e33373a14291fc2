// Package result carries the outcome of a use case: a payload on success or
// one or more human-readable messages on an expected failure.
package result

import "strings"

type Result[T any] struct {
	Data    T
	Errors  []string
	success bool
}

func Success[T any](data T) Result[T] {
	return Result[T]{Data: data, success: true}
}

// Failure builds a failed result. Empty messages are dropped; a failure
// always carries at least one message.
func Failure[T any](messages ...string) Result[T] {
	errs := make([]string, 0, len(messages))
	for _, m := range messages {
		if m != "" {
			errs = append(errs, m)
		}
	}
	if len(errs) == 0 {
		errs = append(errs, "unknown error")
	}
	return Result[T]{Errors: errs}
}

func (r Result[T]) IsSuccess() bool {
	return r.success
}

// Message returns the first error message, or "" for a success.
func (r Result[T]) Message() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0]
}

// Joined returns every error message separated by "; ".
func (r Result[T]) Joined() string {
	return strings.Join(r.Errors, "; ")
}
