package pid

import "time"

// Float is the scalar constraint for all controller arithmetic. A controller
// instantiated at one width uses that width for every field and every
// intermediate computation.
type Float interface {
	~float32 | ~float64
}

// seconds converts an elapsed duration to the controller's scalar type,
// fractional seconds included.
func seconds[T Float](d time.Duration) T {
	return T(d.Seconds())
}

// Range is a closed interval [Start, End] used as an output bound.
// Start <= End is a caller responsibility and is not checked; an inverted
// range still clamps deterministically (End wins).
type Range[T Float] struct {
	Start T
	End   T
}

// Clamp pins v into the interval.
func (r Range[T]) Clamp(v T) T {
	if v > r.End {
		return r.End
	}
	if v < r.Start {
		return r.Start
	}
	return v
}

// Term is one control term of a PID loop. Update consumes the same
// setpoint/measurement pair the sibling terms receive, plus the fixed
// sample period, and returns the term's contribution to the control
// output. Init clears dynamic state without touching configuration.
type Term[T Float] interface {
	Init()
	Update(setpoint, measurement T, sampleTime time.Duration) T
}
