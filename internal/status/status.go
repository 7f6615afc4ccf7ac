// Package status defines the control word threaded through every stage of
// the receive-side filter pipeline.
package status

// Status is reset by the driver before each filter invocation, per the
// filter contract: a filter only ever sets these fields, never clears them
// going in.
type Status struct {
	// Ended means the upstream source has no more samples; downstream
	// should stop.
	Ended bool

	// HasOut is true unless this call produced no output value, in which
	// case the caller must not pass the returned value downstream and
	// should fetch another input instead.
	HasOut bool

	// Flush marks this output as the final value of a run; downstream
	// stages may use it to flush any buffering of their own.
	Flush bool
}

// Reset restores the status word to the state every filter call begins
// with.
func (s *Status) Reset() {
	s.Ended = false
	s.HasOut = true
	s.Flush = false
}
