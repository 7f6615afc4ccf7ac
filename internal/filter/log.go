package filter

import (
	"fmt"
	"io"

	"github.com/sgerwk/soiral/internal/au"
	"github.com/sgerwk/soiral/internal/status"
)

// Log passes every value through unchanged, side-writing it to an AU or
// text file. A nil Log is legal and simply forwards values, the same way
// log_init(NULL) does in the original - this lets callers wire a Log into
// Best unconditionally and only pay for it when a log file was requested.
type Log struct {
	ascii   bool
	w       io.Writer
	bytes   int64
	onClose func(bodyBytes int64) error
}

// NewLogAU wraps w (which must also implement io.WriteSeeker) as an AU log
// at the canonical sample rate, mono.
func NewLogAU(w io.Writer) (*Log, error) {
	if err := au.WriteHeader(w, au.CanonicalSampleRate, 1); err != nil {
		return nil, err
	}
	l := &Log{w: w}
	if ws, ok := w.(io.WriteSeeker); ok {
		l.onClose = func(body int64) error { return au.PatchDataSize(ws, body) }
	}
	return l, nil
}

// NewLogText wraps w as a decimal-integers-one-per-line log.
func NewLogText(w io.Writer) *Log {
	return &Log{ascii: true, w: w}
}

func (f *Log) Step(value int, st *status.Status) int {
	_ = st
	if f == nil {
		return value
	}
	if f.ascii {
		fmt.Fprintf(f.w, "%d\n", value)
		return value
	}
	_ = au.WriteSample(f.w, int16(value))
	f.bytes += 2
	return value
}

func (f *Log) End(st *status.Status) int {
	st.HasOut = false
	if f == nil {
		return 0
	}
	if f.onClose != nil {
		_ = f.onClose(f.bytes)
	}
	if c, ok := f.w.(io.Closer); ok {
		_ = c.Close()
	}
	return 0
}
