// Package filter implements the streaming integer filters that condition
// noisy microphone PCM into a run-length encoded square wave.
//
// Every filter satisfies the Filter interface: Step consumes one input and
// produces one output, signalling through a *status.Status whether that
// output should be used (HasOut), whether the upstream source is
// exhausted (Ended), and whether this output ends a run (Flush); End
// releases any state and returns a trailing value the same way Step does.
// This lets filters absorb inputs (produce nothing) and terminate streams
// without allocating per sample.
package filter

import "github.com/sgerwk/soiral/internal/status"

// Filter is the uniform init/step/end contract every primitive filter and
// the Best pipeline implement. There is no separate init step: a filter's
// constructor (NewDiff, NewStabilize, ...) returns a ready Filter.
type Filter interface {
	// Step processes one input value, consulting and updating st.
	Step(value int, st *status.Status) int

	// End flushes any buffered tail value and releases filter state. It
	// is called exactly once, even on abnormal termination of the
	// driving loop.
	End(st *status.Status) int
}

// Run drives a single filter call: reset the status word, invoke the
// filter, and report whether the caller should stop (ended), skip to the
// next input (absorbed), or use value as this stage's output.
func Run(f Filter, value int, st *status.Status) (out int, ended bool, absorbed bool) {
	st.Reset()
	out = f.Step(value, st)
	if st.Ended {
		return 0, true, false
	}
	if !st.HasOut {
		return 0, false, true
	}
	return out, false, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
