package filter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgerwk/soiral/internal/status"
)

// drive feeds every value in in through f via Run, collecting the outputs
// that were actually passed downstream (has_out=true, not ended) and
// counting every input value exactly once, the way the driver loop does.
func drive(t *testing.T, f Filter, in []int) (out []int, absorbed, ended int) {
	t.Helper()
	var st status.Status
	for _, v := range in {
		o, isEnded, isAbsorbed := Run(f, v, &st)
		switch {
		case isEnded:
			ended++
			return out, absorbed, ended
		case isAbsorbed:
			absorbed++
		default:
			out = append(out, o)
		}
	}
	return out, absorbed, ended
}

func TestDiffAbsorbsFirstSample(t *testing.T) {
	in := []int{5, 8, 3, 3, -4}
	out, absorbed, ended := drive(t, NewDiff(), in)
	require.Equal(t, 0, ended)
	require.Equal(t, 1, absorbed)
	require.Equal(t, len(in)-1, len(out))
	assert.Equal(t, []int{3, -5, 0, -7}, out)
}

func TestDiffAccountsEveryInput(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6}
	out, absorbed, ended := drive(t, NewDiff(), in)
	assert.Equal(t, len(in), len(out)+absorbed+ended)
}

func TestRunlengthPartitionsSignedRuns(t *testing.T) {
	// three runs: +3, -2, +1
	in := []int{1, 0, 0, -1, 0, 1}
	out, _, _ := drive(t, NewRunlength(), in)

	require.NotEmpty(t, out)
	for i, v := range out {
		assert.NotZero(t, v, "emitted run length must be nonzero at %d", i)
		if i > 0 {
			assert.NotEqual(t, sign(out[i-1]), sign(v), "consecutive emitted runs must alternate sign")
		}
	}

	total := 0
	for _, v := range out {
		total += abs(v)
	}
	assert.LessOrEqual(t, total, len(in))
}

func TestRunlengthForceFlushesLongRuns(t *testing.T) {
	r := NewRunlength()
	var st status.Status
	forced := false
	for i := 0; i < 10005; i++ {
		_, ended, absorbed := Run(r, 0, &st)
		require.False(t, ended)
		if !absorbed {
			forced = true
			break
		}
	}
	assert.True(t, forced, "a run longer than 10000 samples must force-flush rather than grow forever")
}

func TestCollapseIsIdempotent(t *testing.T) {
	in := []int{3, 4, -2, -5, 6, -1, -1}
	var st status.Status
	first := NewCollapse()
	once, _, _ := drive(t, first, in)
	once = append(once, first.End(&st))
	second := NewCollapse()
	twice, _, _ := drive(t, second, once)
	twice = append(twice, second.End(&st))
	assert.Equal(t, once, twice)
}

func TestMaximalEmitsAtMostOnePerWindow(t *testing.T) {
	w := 11
	m := NewMaximal(w)
	var st status.Status
	nonzero := 0
	window := 0
	for i := 0; i < 500; i++ {
		out, ended, absorbed := Run(m, (i%7)-3, &st)
		require.False(t, ended)
		window++
		if !absorbed && out != 0 {
			nonzero++
		}
		if window == w {
			assert.LessOrEqual(t, nonzero, 1)
			window = 0
			nonzero = 0
		}
	}
}

func TestStabilizeEnvelopeNonIncreasingUnderQuietInput(t *testing.T) {
	s := NewStabilize()
	var st status.Status
	// prime a large envelope
	Run(s, 10000, &st)
	prevBound := s.bound
	for i := 0; i < 50; i++ {
		Run(s, 1, &st)
		assert.LessOrEqual(t, s.bound, prevBound)
		prevBound = s.bound
	}
}

func TestBackgroundAbsorbsDuringLearningPhase(t *testing.T) {
	b := NewBackground()
	var st status.Status
	for i := 0; i < 999; i++ {
		_, ended, absorbed := Run(b, 100, &st)
		require.False(t, ended)
		assert.True(t, absorbed)
	}
}

func TestPositiveEmitsAbsoluteValue(t *testing.T) {
	p := NewPositive()
	var st status.Status
	out, _, absorbed := Run(p, -7, &st)
	require.False(t, absorbed)
	assert.Equal(t, 7, out)
}

func TestReadAsciiEndsAtEOF(t *testing.T) {
	r, err := NewRead(strings.NewReader("1\n2\n3\n"), true)
	require.NoError(t, err)
	out, _, ended := drive(t, r, []int{0, 0, 0, 0})
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, 1, ended)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
