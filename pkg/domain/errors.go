package domain

import (
	"errors"
	"fmt"
)

// ErrChannelClosed is returned when the evaluation loop side of the bridge
// has shut down and no further commands can be enqueued.
var ErrChannelClosed = errors.New("command channel closed")

// ErrTimeout is returned when the submit deadline elapses before the
// evaluation loop resolved the command.
var ErrTimeout = errors.New("timed out waiting for evaluation")

// ErrNotFound is returned when a selector matches no element. It is a
// normal, reportable outcome, not a crash.
var ErrNotFound = errors.New("not found")

// ErrInvalidParams is returned for malformed or out-of-range request
// parameters, before any command is enqueued.
var ErrInvalidParams = errors.New("invalid parameters")

// ErrPlatformUnsupported is returned for capabilities absent on the
// current operating system (e.g. screenshot capture).
var ErrPlatformUnsupported = errors.New("platform unsupported")

// ErrorKind is the stable wire identifier of a failure category.
type ErrorKind string

const (
	KindInvalidParams       ErrorKind = "invalid_params"
	KindNotFound            ErrorKind = "not_found"
	KindEvaluationError     ErrorKind = "evaluation_error"
	KindTimeout             ErrorKind = "timeout"
	KindChannelClosed       ErrorKind = "channel_closed"
	KindPlatformUnsupported ErrorKind = "platform_unsupported"
	KindInternalError       ErrorKind = "internal_error"
)

// Error is a structured failure carried through responses and surfaced to
// HTTP callers as JSON. Kind is stable; Detail is human-readable.
type Error struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// NewError builds a structured Error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// ErrorFrom maps a Go error to a structured Error, recognizing the
// package sentinels. Unrecognized errors become internal_error.
func ErrorFrom(err error) *Error {
	var structured *Error
	if errors.As(err, &structured) {
		return structured
	}
	switch {
	case errors.Is(err, ErrInvalidParams):
		return &Error{Kind: KindInvalidParams, Detail: err.Error()}
	case errors.Is(err, ErrNotFound):
		return &Error{Kind: KindNotFound, Detail: err.Error()}
	case errors.Is(err, ErrTimeout):
		return &Error{Kind: KindTimeout, Detail: err.Error()}
	case errors.Is(err, ErrChannelClosed):
		return &Error{Kind: KindChannelClosed, Detail: err.Error()}
	case errors.Is(err, ErrPlatformUnsupported):
		return &Error{Kind: KindPlatformUnsupported, Detail: err.Error()}
	default:
		return &Error{Kind: KindInternalError, Detail: err.Error()}
	}
}
