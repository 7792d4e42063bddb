package network

import (
	"errors"
	"fmt"
)

// Domain errors for network construction.
var (
	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("network: parameter out of valid bounds")

	// ErrNodeIndex indicates a connection refers to a node that does not exist.
	ErrNodeIndex = errors.New("network: node index out of range")
)

// ParamError names the offending parameter.
type ParamError struct {
	Param   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s=%g)", e.Wrapped.Error(), e.Param, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}
