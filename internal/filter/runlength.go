package filter

import "github.com/sgerwk/soiral/internal/status"

// Runlength turns a stream of signed samples into run lengths: a run is a
// non-zero sample followed by the zero samples after it, carrying that
// sample's sign. Every non-zero sample ends the current run, as does a run
// that grows implausibly long (over 10000, almost certainly silence misread
// as a never-ending run); it then emits the signed length of the run that
// just ended.
type Runlength struct {
	time int
}

func NewRunlength() *Runlength {
	return &Runlength{time: -1}
}

func (f *Runlength) Step(value int, st *status.Status) int {
	if value != 0 || abs(f.time) > 10000 {
		out := f.time
		switch {
		case value < 0:
			f.time = -1
		case value > 0:
			f.time = 1
		case f.time < 0:
			f.time = -1
		default:
			f.time = 1
		}
		st.Flush = true
		return out
	}
	if f.time < 0 {
		f.time--
	} else {
		f.time++
	}
	st.HasOut = false
	return 0
}

func (f *Runlength) End(st *status.Status) int {
	_ = st
	return f.time
}
