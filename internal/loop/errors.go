package loop

import (
	"errors"
	"fmt"
)

// Domain errors for closed-loop runs.
var (
	// ErrInvalidState indicates the plant state picked up a NaN or Inf.
	ErrInvalidState = errors.New("loop: invalid state (NaN or Inf detected)")

	// ErrConfig indicates an unusable run configuration.
	ErrConfig = errors.New("loop: invalid run config")
)

// StepError wraps an error with the sample it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
