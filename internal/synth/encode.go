package synth

import "github.com/sgerwk/soiral/internal/protocol"

// carrierPeriodUs and sampleIntervalUs fix the synthesizer's audio-rate
// parameters: the period of a 38kHz IR carrier and of a 44.1kHz sample
// clock, both in the Multiplier-scaled microseconds Carrier expects
// (1/100us ticks at DefaultConfig's Multiplier of 100).
const (
	carrierPeriodUs  = 1000000 * 100 / 38000
	sampleIntervalUs = 1000000 * 100 / 44100
)

// Fixed inter-frame gaps a real remote holds between transmissions,
// regardless of how long the frame's own bits took to send: a frame is
// padded with idle carrier until its total duration, from the start of
// its own lead-in, reaches this many microseconds.
const (
	necFrameUs  = 108000
	rc5FrameUs  = 114000
	sonyFrameUs = 45000

	// sharpGapUs is the off-time Sharp holds between its normal frame and
	// its function-complemented check frame, not a total-frame target.
	sharpGapUs = 40000
)

// sequenceMain walks a table's Main sequence and returns the signed
// interval values (in the table's own ten-microsecond unit, one per
// plain interval or per bit emitted) that a receiver decoding this exact
// frame would see as run lengths. bits counts the BIT slots in main,
// consumed from value MSB-first, so the returned sequence, fed straight
// back through protocol.Feed against the same table, reconstructs value.
func sequenceMain(main, zero, one []protocol.Slot, value uint32, bits int) []int {
	var out []int
	shift := uint(bits - 1)
	for _, slot := range main {
		switch slot.Kind {
		case protocol.SlotInterval:
			out = append(out, midpoint(slot))
		case protocol.SlotBit:
			bit := (value >> shift) & 1
			shift--
			seq := zero
			if bit == 1 {
				seq = one
			}
			for _, bs := range seq {
				if bs.Kind == protocol.SlotInterval {
					out = append(out, midpoint(bs))
				}
			}
		}
	}
	return out
}

// midpoint returns the middle of a protocol-table interval slot, in the
// table's own ten-microsecond unit.
func midpoint(s protocol.Slot) int {
	return (s.Lo + s.Hi) / 2
}

// emitSequence renders a sequence of table-unit signed intervals (as
// produced by sequenceMain) onto s as Carrier calls, scaling each to
// microseconds.
func emitSequence(s *Session, seq []int) {
	for _, v := range seq {
		us := v * 10
		on := us > 0
		if us < 0 {
			us = -us
		}
		s.Carrier(on, us, carrierPeriodUs, sampleIntervalUs)
	}
}

// frameDurationUs sums a table-unit interval sequence into the real
// microseconds it takes to play, the same conversion emitSequence applies
// per interval.
func frameDurationUs(seq []int) int {
	total := 0
	for _, v := range seq {
		if v < 0 {
			total -= v
		} else {
			total += v
		}
	}
	return total * 10
}

// emitFrame appends seq to s, then pads with idle carrier so the frame's
// total duration reaches targetUs - the fixed inter-frame gap a real
// remote holds between transmissions - by subtracting the duration
// already emitted from the target.
func emitFrame(s *Session, seq []int, targetUs int) {
	emitSequence(s, seq)
	if trailer := targetUs - frameDurationUs(seq); trailer > 0 {
		s.Carrier(false, trailer, carrierPeriodUs, sampleIntervalUs)
	}
}

// necEncoding packs device/subdevice and function/subfunction the way
// necKey unpacks them: bit-reversed so the parser's own bit order
// reconstructs the same fields, deriving the implicit complement
// sub-byte when subdevice/subfunction is -1.
func necEncoding(device, subdevice, function, subfunction int) uint32 {
	if subdevice == -1 {
		subdevice = ^device & 0xFF
	}
	if subfunction == -1 {
		subfunction = ^function & 0xFF
	}
	raw := uint32(device) | uint32(subdevice)<<8 | uint32(function)<<16 | uint32(subfunction)<<24
	return bitreverse32(raw)
}

// NECSequence returns the interval sequence for a full NEC or NEC2 frame.
func NECSequence(id protocol.ID, device, subdevice, function, subfunction int) []int {
	table := protocol.NECTable
	if id == protocol.NEC2 {
		table = protocol.NEC2Table
	}
	encoding := necEncoding(device, subdevice, function, subfunction)
	return sequenceMain(table.Main, table.Zero, table.One, encoding, 32)
}

// NECRepeatSequence returns the interval sequence for the short "still
// held" frame sent in place of a full code while a button stays down.
func NECRepeatSequence(id protocol.ID) []int {
	table := protocol.NECRepeatTable
	if id == protocol.NEC2 {
		table = protocol.NEC2RepeatTable
	}
	var out []int
	for _, slot := range table.Main {
		if slot.Kind == protocol.SlotInterval {
			out = append(out, midpoint(slot))
		}
	}
	return out
}

// sharpEncoding packs a Sharp frame's 14 bits (5-bit device, 8-bit
// function, 1 frame marker: 1 on the normal frame, 0 on the reversed
// check frame) so the parser's bit order reconstructs them as sharpKey
// expects.
func sharpEncoding(device, function int, reversedFrame bool) uint32 {
	f := function
	if reversedFrame {
		f = ^function & 0xFF
	}
	marker := uint32(1)
	if reversedFrame {
		marker = 0
	}
	raw := uint32(device)&0x1F | uint32(f)&0xFF<<5 | marker<<13
	return bitreverse32(raw) >> (32 - 14)
}

// SharpSequence returns the interval sequence for one Sharp frame (either
// the normal or the function-complemented check frame).
func SharpSequence(device, function int, reversedFrame bool) []int {
	encoding := sharpEncoding(device, function, reversedFrame)
	return sequenceMain(protocol.SharpTable.Main, protocol.SharpTable.Zero, protocol.SharpTable.One, encoding, 14)
}

// SharpFullSequence returns the interval sequence for a complete Sharp
// transmission: the normal frame, the protocol's 40ms inter-frame gap,
// then the function-complemented check frame - the two-frame structure
// sharp_code always sends, not an optional extra.
func SharpFullSequence(device, function int) []int {
	seq := SharpSequence(device, function, false)
	seq = append(seq, -sharpGapUs/10)
	return append(seq, SharpSequence(device, function, true)...)
}

// sonyEncoding is shared by the 12- and 20-bit SIRC variants: packs
// function (7 bits), device (5 bits) and subdevice (the remaining high
// bits of a 20-bit frame) and reverses them to match sonyKey's decode.
func sonyEncoding(bits, device, subdevice, function int) uint32 {
	raw := uint32(function)&0x7F | uint32(device)&0x1F<<7 | uint32(subdevice)<<12
	return bitreverse32(raw) >> (32 - uint(bits))
}

// Sony12Sequence returns the interval sequence for the 12-bit SIRC
// variant (7-bit function, 5-bit device, no subdevice).
func Sony12Sequence(device, function int) []int {
	encoding := sonyEncoding(12, device, 0, function)
	table := protocol.Sony12Table
	out := []int{midpoint(table.Main[0])}
	return append(out, sequenceMain(table.Main[1:], table.Zero, table.One, encoding, 12)...)
}

// Sony20Sequence returns the interval sequence for the 20-bit SIRC
// variant (7-bit function, 5-bit device, 8-bit subdevice).
func Sony20Sequence(device, subdevice, function int) []int {
	encoding := sonyEncoding(20, device, subdevice, function)
	table := protocol.Sony20Table
	out := []int{midpoint(table.Main[0])}
	return append(out, sequenceMain(table.Main[1:], table.Zero, table.One, encoding, 20)...)
}

// RC5Sequence returns the interval sequence for an RC5 frame: the lone
// anchor pulse, then toggle, device (5 bits) and function (6 bits) as 12
// biphase bits. toggle should alternate between successive transmissions
// of the same key, normally driven by Session.RC5Toggle. Unlike the other
// protocols RC5 needs no bit reversal: biphase already sends its fields
// MSB-first.
func RC5Sequence(device, function, toggle int) []int {
	encoding := uint32(toggle&1)<<11 | uint32(device&0x1F)<<6 | uint32(function&0x3F)
	table := protocol.RC5Table
	out := []int{midpoint(table.Main[0])}
	return append(out, sequenceMain(table.Main[1:], table.Zero, table.One, encoding, 12)...)
}

// bitreverse32 reverses the 32 bits of v.
func bitreverse32(v uint32) uint32 {
	var r uint32
	for i := 0; i < 32; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// NECCode appends a full NEC or NEC2 frame to s as PCM, padded to the
// protocol's fixed 108ms inter-frame gap.
func NECCode(s *Session, id protocol.ID, device, subdevice, function, subfunction int) {
	emitFrame(s, NECSequence(id, device, subdevice, function, subfunction), necFrameUs)
}

// NECRepeat appends an NEC or NEC2 repeat frame to s as PCM, padded to the
// same 108ms gap as a full frame.
func NECRepeat(s *Session, id protocol.ID) {
	emitFrame(s, NECRepeatSequence(id), necFrameUs)
}

// SharpCode appends a complete Sharp transmission (normal frame, 40ms
// gap, function-complemented check frame) to s as PCM.
func SharpCode(s *Session, device, function int) {
	emitSequence(s, SharpFullSequence(device, function))
}

// Sony12Code appends a 12-bit SIRC frame to s as PCM, padded to the
// protocol's fixed 45ms inter-frame gap.
func Sony12Code(s *Session, device, function int) {
	emitFrame(s, Sony12Sequence(device, function), sonyFrameUs)
}

// Sony20Code appends a 20-bit SIRC frame to s as PCM, padded to the same
// 45ms gap as the 12-bit variant.
func Sony20Code(s *Session, device, subdevice, function int) {
	emitFrame(s, Sony20Sequence(device, subdevice, function), sonyFrameUs)
}

// RC5Code appends an RC5 frame to s as PCM, padded to the protocol's
// fixed 114ms inter-frame gap.
func RC5Code(s *Session, device, function, toggle int) {
	emitFrame(s, RC5Sequence(device, function, toggle), rc5FrameUs)
}
