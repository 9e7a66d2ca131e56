package errdefs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the operation failure taxonomy. Handlers match on
// these with errors.Is to decide how a failure is reported.
var (
	ErrPathEscape          = errors.New("path escapes the sandbox root")
	ErrNotFound            = errors.New("not found")
	ErrNotADirectory       = errors.New("not a directory")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamUnavailable = errors.New("model endpoint unavailable")
)

// PathError wraps a path-related failure with the operation and path that
// produced it.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ParamError reports a missing or malformed operation parameter.
type ParamError struct {
	Param string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %q: %v", e.Param, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// NewParamError builds a ParamError wrapping ErrInvalidArgument.
func NewParamError(param, reason string) *ParamError {
	return &ParamError{Param: param, Err: fmt.Errorf("%w: %s", ErrInvalidArgument, reason)}
}

// IsRequestError reports whether err stems from a malformed request rather
// than from the state of the file system.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
