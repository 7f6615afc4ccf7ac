package filter

import "github.com/sgerwk/soiral/internal/status"

// Positive emits |x|.
type Positive struct{}

func NewPositive() *Positive { return &Positive{} }

func (f *Positive) Step(value int, st *status.Status) int {
	_ = st
	return abs(value)
}

func (f *Positive) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
