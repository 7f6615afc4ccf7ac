package filter

import "github.com/sgerwk/soiral/internal/status"

// Stabilize maintains an adaptive envelope that decays geometrically
// toward zero (bound *= 0.9995 each step) but jumps up to track any
// sample that exceeds it, then gates out anything below a quarter of the
// envelope - a scale-free amplitude threshold.
type Stabilize struct {
	bound int
}

func NewStabilize() *Stabilize { return &Stabilize{} }

func (f *Stabilize) Step(value int, st *status.Status) int {
	_ = st
	a := abs(value)
	if a > f.bound {
		f.bound = a
	} else {
		f.bound = f.bound * 9995 / 10000
	}
	if a < f.bound/4 {
		return 0
	}
	return value
}

func (f *Stabilize) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
