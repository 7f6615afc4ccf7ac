package filter

import "github.com/sgerwk/soiral/internal/status"

// Diff emits consecutive differences x[n] - x[n-1]; the first sample is
// absorbed since there is no previous value yet.
type Diff struct {
	prev    int
	primed  bool
}

func NewDiff() *Diff { return &Diff{} }

func (f *Diff) Step(value int, st *status.Status) int {
	if !f.primed {
		f.prev = value
		f.primed = true
		st.HasOut = false
		return 0
	}
	out := value - f.prev
	f.prev = value
	return out
}

func (f *Diff) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
