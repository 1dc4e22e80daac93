// Package command defines the command algebra: the three-valued
// Result, the Command type, its combinators, and the Context handle
// commands execute against.
package command

import "fmt"

// Status is the outcome tag of a Result.
type Status uint8

const (
	// StatusOK means the command handled the event.
	StatusOK Status = iota
	// StatusNoOp means the command did not handle the event; a
	// combinator may try the next one.
	StatusNoOp
	// StatusError means the command failed with a user-facing message.
	StatusError
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "noop"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one command invocation. Message is set
// only for errors.
type Result struct {
	Status  Status
	Message string
}

// Ok returns a handled result.
func Ok() Result {
	return Result{Status: StatusOK}
}

// NoOp returns a not-handled result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error returns a failed result with a user-facing message.
func Error(msg string) Result {
	return Result{Status: StatusError, Message: msg}
}

// Errorf returns a failed result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// IsOK reports whether the result is Ok.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsNoOp reports whether the result is NoOp.
func (r Result) IsNoOp() bool {
	return r.Status == StatusNoOp
}

// IsError reports whether the result is an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}
