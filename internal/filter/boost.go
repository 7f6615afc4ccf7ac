package filter

import (
	"github.com/sgerwk/soiral/internal/ringbuf"
	"github.com/sgerwk/soiral/internal/status"
)

// Boost emits the window's largest absolute value, the signed extremum
// over the last size samples.
type Boost struct {
	buf *ringbuf.Buffer
}

func NewBoost(size int) *Boost {
	return &Boost{buf: ringbuf.New(size)}
}

func (f *Boost) Step(value int, st *status.Status) int {
	_ = st
	f.buf.Push(value)
	best := 0
	for _, v := range f.buf.Data {
		if abs(v) > abs(best) {
			best = v
		}
	}
	return best
}

func (f *Boost) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
