package filter

import (
	"github.com/sgerwk/soiral/internal/ringbuf"
	"github.com/sgerwk/soiral/internal/status"
)

// Valley looks at a window split in half around the current position and
// emits the smaller of the two halves' peak absolute values - the opposite
// extremum from Boost, useful for finding the quiet gap between bursts.
type Valley struct {
	buf *ringbuf.Buffer
}

func NewValley(size int) *Valley {
	return &Valley{buf: ringbuf.New(size)}
}

func (f *Valley) Step(value int, st *status.Status) int {
	_ = st
	f.buf.Push(value)

	size := len(f.buf.Data)
	before, after := 0, 0
	for i := 0; i < size; i++ {
		c := abs(f.buf.At(i))
		if i < size/2 && before < c {
			before = c
		}
		if i >= size/2 && after < c {
			after = c
		}
	}
	if before < after {
		return before
	}
	return after
}

func (f *Valley) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
