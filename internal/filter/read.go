package filter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sgerwk/soiral/internal/au"
	"github.com/sgerwk/soiral/internal/status"
)

// Read is the source filter: it reads signed 16-bit big-endian samples
// from an AU file, or decimal integers one per line from text, setting
// Status.Ended at EOF.
type Read struct {
	ascii bool
	r     io.Reader
	sc    *bufio.Scanner
}

// NewRead wraps r as a Read filter. When ascii is false, r must begin with
// a valid AU header (mono, 16-bit PCM); NewRead consumes that header
// before returning. A header whose sample rate is not
// au.CanonicalSampleRate is an error: the file is not read.
func NewRead(r io.Reader, ascii bool) (*Read, error) {
	rd := &Read{ascii: ascii, r: r}
	if ascii {
		rd.sc = bufio.NewScanner(r)
		rd.sc.Split(bufio.ScanWords)
		return rd, nil
	}
	hdr, err := au.ReadHeader(r, 1)
	if err != nil {
		return nil, err
	}
	if hdr.SampleRate != au.CanonicalSampleRate {
		return nil, fmt.Errorf("au: sample rate %d is not %d", hdr.SampleRate, au.CanonicalSampleRate)
	}
	return rd, nil
}

func (f *Read) Step(_ int, st *status.Status) int {
	if f.ascii {
		if !f.sc.Scan() {
			st.Ended = true
			return 0
		}
		var v int
		if _, err := fmt.Sscanf(f.sc.Text(), "%d", &v); err != nil {
			st.Ended = true
			return 0
		}
		return v
	}
	v, err := au.ReadSample(f.r)
	if err != nil {
		st.Ended = true
		return 0
	}
	return int(v)
}

func (f *Read) End(st *status.Status) int {
	st.HasOut = false
	if c, ok := f.r.(io.Closer); ok {
		_ = c.Close()
	}
	return 0
}
