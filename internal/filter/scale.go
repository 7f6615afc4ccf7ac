package filter

import (
	"fmt"
	"io"
	"math"

	"github.com/sgerwk/soiral/internal/status"
)

// Scale is a pass-through VU-meter filter: every 32 samples it draws a
// text bar graph of the largest magnitude seen since the last draw. It is
// not part of the Best pipeline; soiral-recv wires it in separately when
// -meter is requested.
type Scale struct {
	w      io.Writer
	level  int
	nlevel int
}

// NewScale wraps w as a VU-meter sink.
func NewScale(w io.Writer) *Scale {
	return &Scale{w: w}
}

func (f *Scale) Step(value int, st *status.Status) int {
	_ = st
	if value > f.level {
		f.level = value
	}
	if -value > f.level {
		f.level = -value
	}
	f.nlevel++
	if f.nlevel < 32 {
		return value
	}

	fmt.Fprintf(f.w, "%8d ", f.level)
	for i := -30; i < 30; i++ {
		switch {
		case i < 0:
			if f.level < 0 && f.level*80/math.MaxInt16 < i {
				fmt.Fprint(f.w, "<")
			} else {
				fmt.Fprint(f.w, " ")
			}
		case i == 0:
			fmt.Fprint(f.w, "|")
		default:
			if f.level > 0 && i < f.level*80/math.MaxInt16 {
				fmt.Fprint(f.w, ">")
			} else {
				fmt.Fprint(f.w, " ")
			}
		}
	}
	fmt.Fprint(f.w, "\r")

	f.level = 0
	f.nlevel = 0
	return value
}

func (f *Scale) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
