package filter

import (
	"math"

	"github.com/sgerwk/soiral/internal/status"
)

// Amplify emits round(k*x); a negative k inverts polarity.
type Amplify struct {
	factor float64
}

func NewAmplify(factor float64) *Amplify {
	return &Amplify{factor: factor}
}

func (f *Amplify) Step(value int, st *status.Status) int {
	_ = st
	return int(math.Round(float64(value) * f.factor))
}

func (f *Amplify) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
