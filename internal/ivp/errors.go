package ivp

import (
	"errors"
	"fmt"
)

// Domain errors for problem definitions and solve requests.
var (
	// ErrInvalidArgument indicates a solve request that violates a precondition.
	ErrInvalidArgument = errors.New("ivp: invalid argument")

	// ErrUnknownEquation indicates a lookup for an equation that is not registered.
	ErrUnknownEquation = errors.New("ivp: unknown equation")
)

// ParamError reports which parameter of a solve request was rejected.
type ParamError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%v: %s", ErrInvalidArgument, e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidArgument
}
