package filter

import (
	"github.com/sgerwk/soiral/internal/ringbuf"
	"github.com/sgerwk/soiral/internal/status"
)

// Maximal delays the stream by half a window, replacing every sample that
// is not the window's peak absolute value with zero. The sample sitting at
// the peak is doubled in the window once reported, so a single spike is
// only ever reported once as later windows slide past it.
type Maximal struct {
	buf *ringbuf.Buffer
}

func NewMaximal(size int) *Maximal {
	return &Maximal{buf: ringbuf.New(size)}
}

func (f *Maximal) Step(value int, st *status.Status) int {
	_ = st
	size := len(f.buf.Data)
	f.buf.Push(value)

	mid := size / 2
	if abs(f.buf.At(mid)) != f.buf.Maximal() {
		return 0
	}
	out := f.buf.At(mid)
	f.buf.Set(mid, out*2)
	return out
}

func (f *Maximal) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
