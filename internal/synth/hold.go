package synth

// HoldSequence returns a single interval of durationUs (positive for
// carrier on, negative for idle), a raw calibration command with no
// protocol identity: useful for keeping an LED lit for a fixed time or
// probing a playback chain's timing with an oscilloscope.
func HoldSequence(on bool, durationUs int) []int {
	v := durationUs / 10
	if !on {
		v = -v
	}
	return []int{v}
}

// Hold appends a raw carrier-hold command to s.
func Hold(s *Session, on bool, durationUs int) {
	emitSequence(s, HoldSequence(on, durationUs))
}

// TestSequence returns an alternating on/off calibration waveform of n
// segments at the given duration, used to verify a synthesizer's timing
// against a loopback capture independent of any protocol.
func TestSequence(n, durationUs int) []int {
	seq := make([]int, 0, n)
	v := durationUs / 10
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			seq = append(seq, v)
		} else {
			seq = append(seq, -v)
		}
	}
	return seq
}

// Test appends a calibration waveform to s.
func Test(s *Session, n, durationUs int) {
	emitSequence(s, TestSequence(n, durationUs))
}
