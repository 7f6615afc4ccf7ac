package filter

import (
	"github.com/charmbracelet/log"

	"github.com/sgerwk/soiral/internal/status"
)

const backgroundLearnSamples = 1000

// Background learns the noise floor over its first backgroundLearnSamples
// samples, tracking a running positive and negative bound that leans toward
// new extremes but damps rare spikes by averaging them in at only a quarter
// weight. Once learned, it gates out anything within twice those bounds as
// background noise rather than a genuine IR pulse.
type Background struct {
	Logger *log.Logger

	maxpos, maxneg int
	time, silence  int
	reportedBounds bool
}

func NewBackground() *Background {
	return &Background{maxpos: -1, maxneg: 1}
}

func (f *Background) Step(value int, st *status.Status) int {
	if f.time < backgroundLearnSamples {
		// total silence is due to the card or recording program, not
		// to the ir diode; count that as 1/10 time
		f.silence++
		if value == 0 && f.silence%10 != 0 {
			return 0
		}
		f.time++

		st.HasOut = false
		if f.time < 10 {
			return 0
		}

		if f.maxpos < value {
			f.maxpos = (3*f.maxpos + value) / 4
		}
		if f.maxneg > value {
			f.maxneg = (3*f.maxneg + value) / 4
		}
		return 0
	}
	if !f.reportedBounds {
		f.reportedBounds = true
		if f.Logger != nil {
			f.Logger.Debugf("background bounds: %d %d", f.maxneg, f.maxpos)
		}
	}
	if 2*f.maxneg < value && value < 2*f.maxpos {
		return 0
	}
	return value
}

func (f *Background) End(st *status.Status) int {
	st.HasOut = false
	return 0
}
