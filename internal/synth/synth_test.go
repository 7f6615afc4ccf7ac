package synth

import (
	"testing"

	"github.com/sgerwk/soiral/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode feeds seq through a fresh protocol.State for table, returning the
// encoding from the last completed sequence.
func decode(t *testing.T, seq []int, table *protocol.Table) (uint32, bool) {
	t.Helper()
	var st protocol.State
	var encoding uint32
	var completed bool
	for _, v := range seq {
		e, ok := protocol.Feed(v, table, &st)
		if ok {
			encoding, completed = e, true
		}
	}
	return encoding, completed
}

func TestNECSequenceRoundTrips(t *testing.T) {
	seq := NECSequence(protocol.NEC, 0x04, -1, 0x08, -1)
	encoding, completed := decode(t, seq, protocol.NECTable)
	require.True(t, completed)

	key := protocol.Key{}
	p := protocol.NewParser()
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key = k
		}
	}
	assert.Equal(t, protocol.NEC, key.Protocol)
	assert.Equal(t, 0x04, key.Device)
	assert.Equal(t, 0x08, key.Function)
	_ = encoding
}

func TestNEC2SequenceRoundTrips(t *testing.T) {
	seq := NECSequence(protocol.NEC2, 0x11, -1, 0x22, -1)
	p := protocol.NewParser()
	var key protocol.Key
	var completed bool
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key, completed = k, true
		}
	}
	require.True(t, completed)
	assert.Equal(t, protocol.NEC2, key.Protocol)
	assert.Equal(t, 0x11, key.Device)
	assert.Equal(t, 0x22, key.Function)
}

func TestNECRepeatSequenceRoundTrips(t *testing.T) {
	seq := NECRepeatSequence(protocol.NEC)
	p := protocol.NewParser()
	var key protocol.Key
	var completed bool
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key, completed = k, true
		}
	}
	require.True(t, completed)
	assert.Equal(t, protocol.NEC, key.Protocol)
	assert.True(t, key.Repeat)
}

func TestSharpSequenceRoundTrips(t *testing.T) {
	seq := SharpSequence(0x03, 0x10, false)
	p := protocol.NewParser()
	var key protocol.Key
	var completed bool
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key, completed = k, true
		}
	}
	require.True(t, completed)
	assert.Equal(t, protocol.Sharp, key.Protocol)
	assert.Equal(t, 0x03, key.Device)
	assert.Equal(t, 0x10, key.Function)
	assert.False(t, key.Repeat)
}

func TestSharpFullSequenceRoundTripsBothFrames(t *testing.T) {
	seq := SharpFullSequence(0x03, 0x10)
	p := protocol.NewParser()
	var keys []protocol.Key
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			keys = append(keys, k)
		}
	}
	require.Len(t, keys, 2)
	for _, key := range keys {
		assert.Equal(t, protocol.Sharp, key.Protocol)
		assert.Equal(t, 0x03, key.Device)
		assert.Equal(t, 0x10, key.Function)
	}
	assert.False(t, keys[0].Repeat)
	assert.True(t, keys[1].Repeat)
}

func TestSony12SequenceRoundTrips(t *testing.T) {
	seq := Sony12Sequence(0x05, 0x15)
	p := protocol.NewParser()
	var key protocol.Key
	var completed bool
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key, completed = k, true
		}
	}
	require.True(t, completed)
	assert.Equal(t, protocol.Sony12, key.Protocol)
	assert.Equal(t, 0x05, key.Device)
	assert.Equal(t, 0x15, key.Function)
}

func TestSony20SequenceRoundTrips(t *testing.T) {
	seq := Sony20Sequence(0x05, 0x0A, 0x15)
	p := protocol.NewParser()
	var key protocol.Key
	var completed bool
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key, completed = k, true
		}
	}
	require.True(t, completed)
	assert.Equal(t, protocol.Sony20, key.Protocol)
	assert.Equal(t, 0x05, key.Device)
	assert.Equal(t, 0x0A, key.Subdevice)
	assert.Equal(t, 0x15, key.Function)
}

func TestRC5SequenceRoundTrips(t *testing.T) {
	seq := RC5Sequence(0x05, 0x36, 1)
	p := protocol.NewParser()
	var key protocol.Key
	var completed bool
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			key, completed = k, true
		}
	}
	require.True(t, completed)
	assert.Equal(t, protocol.RC5, key.Protocol)
	assert.Equal(t, 0x05, key.Device)
	assert.Equal(t, 0x36, key.Function)
	assert.True(t, key.Repeat)
}

func TestCarrierProducesStereoPairs(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Carrier(true, 560, carrierPeriodUs, sampleIntervalUs)
	assert.NotEmpty(t, s.Samples())
	assert.Equal(t, 0, len(s.Samples())%2)
}

func TestCarrierOffEmitsHoldLevel(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Carrier(false, 4500, carrierPeriodUs, sampleIntervalUs)
	for i := 0; i < len(s.Samples()); i += 2 {
		assert.Equal(t, s.Config.Hold, s.Samples()[i])
		assert.Equal(t, s.Config.Hold, s.Samples()[i+1])
	}
}

func TestCarrierOverflowStopsEmitting(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Carrier(true, 100*MaxSamples, carrierPeriodUs, sampleIntervalUs)
	assert.LessOrEqual(t, len(s.Samples()), MaxSamples)
}

func TestNECCodeAppendsPCM(t *testing.T) {
	s := NewSession(DefaultConfig())
	NECCode(s, protocol.NEC, 0x04, -1, 0x08, -1)
	assert.NotEmpty(t, s.Samples())
}

// sampleDurationUs approximates the real microseconds a stereo sample
// buffer spans, undoing Carrier's Multiplier scaling, for checking that
// frame padding lands close to its target.
func sampleDurationUs(s *Session) int {
	return len(s.Samples()) / 2 * sampleIntervalUs / s.Config.Multiplier
}

func TestNECCodePadsToFixedFrameDuration(t *testing.T) {
	short := NewSession(DefaultConfig())
	NECCode(short, protocol.NEC, 0x00, -1, 0x00, -1)

	long := NewSession(DefaultConfig())
	NECCode(long, protocol.NEC, 0xFF, -1, 0xFF, -1)

	assert.InDelta(t, necFrameUs, sampleDurationUs(short), 1000)
	assert.InDelta(t, necFrameUs, sampleDurationUs(long), 1000)
}

func TestRC5CodePadsToFixedFrameDuration(t *testing.T) {
	s := NewSession(DefaultConfig())
	RC5Code(s, 0x05, 0x36, 0)
	assert.InDelta(t, rc5FrameUs, sampleDurationUs(s), 1000)
}

func TestSony12CodePadsToFixedFrameDuration(t *testing.T) {
	s := NewSession(DefaultConfig())
	Sony12Code(s, 0x05, 0x15)
	assert.InDelta(t, sonyFrameUs, sampleDurationUs(s), 1000)
}

func TestSessionResetKeepsOvertimeAndToggle(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.RC5Toggle = 1
	s.Overtime = 7
	RC5Code(s, 0x01, 0x02, s.RC5Toggle)
	s.Reset()
	assert.Empty(t, s.Samples())
	assert.Equal(t, 7, s.Overtime)
	assert.Equal(t, 1, s.RC5Toggle)
}
