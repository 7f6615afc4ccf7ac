package filter

import "github.com/sgerwk/soiral/internal/status"

// Trigger emits x unmodified once |x| reaches bound, else emits 0.
type Trigger struct {
	bound int
}

func NewTrigger(bound int) *Trigger {
	return &Trigger{bound: bound}
}

func (f *Trigger) Step(value int, st *status.Status) int {
	_ = st
	if abs(value) < f.bound {
		return 0
	}
	return value
}

func (f *Trigger) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
