// Package hydroerr defines the error types shared by the hydrolog
// computation packages.
package hydroerr

import "fmt"

// InvalidParameterError reports an input value outside its documented
// domain. Inputs are never silently clamped; the single documented
// exception is the CN=100 degenerate case handled in pkg/scscn.
type InvalidParameterError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

// InvalidParam builds an InvalidParameterError.
func InvalidParam(param string, value float64, reason string) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: reason}
}

// MustBePositive is shorthand for the most common validation failure.
func MustBePositive(param string, value float64) error {
	return &InvalidParameterError{Param: param, Value: value, Reason: "must be positive"}
}

// EstimationError reports a failure of a bracketed numerical solver to
// bracket or converge on a root. It carries the attempted bracket and
// the iteration count so the caller can diagnose physiographic inputs
// outside the method's validity range.
type EstimationError struct {
	Method     string
	BracketLo  float64
	BracketHi  float64
	Iterations int
	Target     float64
	Reason     string
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("%s estimation failed after %d iterations on bracket [%g, %g] (target %g): %s",
		e.Method, e.Iterations, e.BracketLo, e.BracketHi, e.Target, e.Reason)
}
