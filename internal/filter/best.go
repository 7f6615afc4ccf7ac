package filter

import (
	"github.com/charmbracelet/log"

	"github.com/sgerwk/soiral/internal/status"
)

// Best chains the canonical decoding pipeline - log, diff, maximal(11),
// stabilize, background, runlength - into one filter. The sub-filters are
// called back to back without resetting Status in between, the same way
// the stages of a single decoding pass feed each other directly: an early
// stage absorbing its sample does not stop the later stages from still
// seeing (and learning from) the zero it produced.
type Best struct {
	log        *Log
	diff       *Diff
	maximal    *Maximal
	stabilize  *Stabilize
	background *Background
	runlength  *Runlength
}

// NewBest builds the canonical pipeline. log may be nil, in which case raw
// samples are not recorded anywhere.
func NewBest(l *Log, logger *log.Logger) *Best {
	background := NewBackground()
	background.Logger = logger
	return &Best{
		log:        l,
		diff:       NewDiff(),
		maximal:    NewMaximal(11),
		stabilize:  NewStabilize(),
		background: background,
		runlength:  NewRunlength(),
	}
}

func (f *Best) Step(value int, st *status.Status) int {
	value = f.log.Step(value, st)
	value = f.diff.Step(value, st)
	value = f.maximal.Step(value, st)
	value = f.stabilize.Step(value, st)
	value = f.background.Step(value, st)
	value = f.runlength.Step(value, st)
	return value
}

func (f *Best) End(st *status.Status) int {
	value := f.log.End(st)
	value = f.diff.End(st)
	value = f.maximal.End(st)
	value = f.stabilize.End(st)
	value = f.background.End(st)
	value = f.runlength.End(st)
	return value
}
