package synth

import (
	"testing"

	"github.com/sgerwk/soiral/internal/protocol"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// feedThroughParser drives seq through a fresh Parser and returns every Key
// it completes along the way, in order.
func feedThroughParser(seq []int) []protocol.Key {
	p := protocol.NewParser()
	var keys []protocol.Key
	for _, v := range seq {
		if k, ok := p.Feed(v); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// withZeroPadding returns seq with a run of n zero-valued samples spliced in
// before the first element, the way a quiet sound-card input would pad a
// real capture before the first transmission starts.
func withZeroPadding(seq []int, n int) []int {
	out := make([]int, 0, n+len(seq))
	for i := 0; i < n; i++ {
		out = append(out, 0)
	}
	return append(out, seq...)
}

// TestNECSequenceRoundTripsForAnyDeviceFunction fuzzes device/function
// across their full byte range, with and without an implied (-1) complement
// sub-byte, and checks the encoded frame always decodes back to the values
// given it.
func TestNECSequenceRoundTripsForAnyDeviceFunction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		device := rapid.IntRange(0, 0xFF).Draw(t, "device")
		function := rapid.IntRange(0, 0xFF).Draw(t, "function")
		explicitSub := rapid.Bool().Draw(t, "explicitSub")
		subdevice, subfunction := -1, -1
		if explicitSub {
			subdevice = rapid.IntRange(0, 0xFF).Draw(t, "subdevice")
			subfunction = rapid.IntRange(0, 0xFF).Draw(t, "subfunction")
		}
		padding := rapid.IntRange(0, 5).Draw(t, "padding")

		seq := withZeroPadding(NECSequence(protocol.NEC, device, subdevice, function, subfunction), padding)
		keys := feedThroughParser(seq)

		require.Len(t, keys, 1)
		key := keys[0]
		require.Equal(t, protocol.NEC, key.Protocol)
		require.Equal(t, device, key.Device)
		require.Equal(t, function, key.Function)
		if explicitSub && subdevice != (^device&0xFF) {
			require.Equal(t, subdevice, key.Subdevice)
		}
		if explicitSub && subfunction != (^function&0xFF) {
			require.Equal(t, subfunction, key.Subfunction)
		}
	})
}

// TestRC5SequenceRoundTripsForAnyDeviceFunctionToggle fuzzes RC5's narrower
// fields (5-bit device, 6-bit function) and its toggle bit.
func TestRC5SequenceRoundTripsForAnyDeviceFunctionToggle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		device := rapid.IntRange(0, 0x1F).Draw(t, "device")
		function := rapid.IntRange(0, 0x3F).Draw(t, "function")
		toggle := rapid.IntRange(0, 1).Draw(t, "toggle")
		padding := rapid.IntRange(0, 5).Draw(t, "padding")

		seq := withZeroPadding(RC5Sequence(device, function, toggle), padding)
		keys := feedThroughParser(seq)

		require.Len(t, keys, 1)
		key := keys[0]
		require.Equal(t, protocol.RC5, key.Protocol)
		require.Equal(t, device, key.Device)
		require.Equal(t, function, key.Function)
		require.Equal(t, toggle == 1, key.Repeat)
	})
}

// TestSonySequenceRoundTripsForAnyDeviceFunction fuzzes both SIRC frame
// widths across their legal field ranges.
func TestSonySequenceRoundTripsForAnyDeviceFunction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		device := rapid.IntRange(0, 0x1F).Draw(t, "device")
		function := rapid.IntRange(0, 0x7F).Draw(t, "function")
		padding := rapid.IntRange(0, 5).Draw(t, "padding")

		if rapid.Bool().Draw(t, "twelveBit") {
			seq := withZeroPadding(Sony12Sequence(device, function), padding)
			keys := feedThroughParser(seq)
			require.Len(t, keys, 1)
			require.Equal(t, protocol.Sony12, keys[0].Protocol)
			require.Equal(t, device, keys[0].Device)
			require.Equal(t, function, keys[0].Function)
			return
		}

		subdevice := rapid.IntRange(0, 0xFF).Draw(t, "subdevice")
		seq := withZeroPadding(Sony20Sequence(device, subdevice, function), padding)
		keys := feedThroughParser(seq)
		require.Len(t, keys, 1)
		require.Equal(t, protocol.Sony20, keys[0].Protocol)
		require.Equal(t, device, keys[0].Device)
		require.Equal(t, subdevice, keys[0].Subdevice)
		require.Equal(t, function, keys[0].Function)
	})
}

// TestSharpFullSequenceRoundTripsForAnyDeviceFunction fuzzes Sharp's 5-bit
// device and 8-bit function fields and checks both frames of a full
// transmission decode to matching device/function with the second frame
// flagged as the function-complemented check frame.
func TestSharpFullSequenceRoundTripsForAnyDeviceFunction(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		device := rapid.IntRange(0, 0x1F).Draw(t, "device")
		function := rapid.IntRange(0, 0xFF).Draw(t, "function")
		padding := rapid.IntRange(0, 5).Draw(t, "padding")

		seq := withZeroPadding(SharpFullSequence(device, function), padding)
		keys := feedThroughParser(seq)

		require.Len(t, keys, 2)
		for _, key := range keys {
			require.Equal(t, protocol.Sharp, key.Protocol)
			require.Equal(t, device, key.Device)
			require.Equal(t, function, key.Function)
		}
		require.False(t, keys[0].Repeat)
		require.True(t, keys[1].Repeat)
	})
}

// TestFeedWorkIsLinearInSequenceLength exercises the "parser's total work
// is linear in input length" property by construction: every sample in a
// fuzzed NEC sequence, interleaved with injected noise runs between real
// frames, costs exactly one Feed call, never a multiple that grows with how
// much of the stream has already been consumed.
func TestFeedWorkIsLinearInSequenceLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		device := rapid.IntRange(0, 0xFF).Draw(t, "device")
		function := rapid.IntRange(0, 0xFF).Draw(t, "function")
		frames := rapid.IntRange(1, 4).Draw(t, "frames")

		p := protocol.NewParser()
		var seq []int
		for i := 0; i < frames; i++ {
			seq = withZeroPadding(NECSequence(protocol.NEC, device, -1, function, -1), rapid.IntRange(0, 3).Draw(t, "noise"))
			completions := 0
			calls := 0
			for _, v := range seq {
				calls++
				if _, ok := p.Feed(v); ok {
					completions++
				}
			}
			require.Equal(t, 1, completions)
			require.Equal(t, len(seq), calls)
		}
	})
}
