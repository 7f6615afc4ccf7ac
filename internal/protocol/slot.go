// Package protocol implements the table-driven IR protocol parser: a set
// of interval sequences (NEC, NEC2, Sharp, Sony12, Sony20, RC5, and their
// repeat/polarity-inverted variants) matched against a stream of signed
// run-length values, plus the encoders that reverse the process.
package protocol

// SlotKind distinguishes the three kinds of step a protocol sequence can
// contain. This replaces the source table's (1,1)/(0,0) sentinel pairs
// stuffed into a plain interval array with an explicit variant.
type SlotKind int

const (
	// SlotInterval matches a signed duration against [Lo,Hi] (or [Hi,Lo]
	// when both are negative).
	SlotInterval SlotKind = iota
	// SlotBit starts parallel bit-0/bit-1 sub-parsing.
	SlotBit
	// SlotEnd marks a complete sequence.
	SlotEnd
)

// Slot is one step of a protocol's main, zero, or one sequence.
type Slot struct {
	Kind   SlotKind
	Lo, Hi int
}

// Interval builds an interval slot matching a signed duration between lo
// and hi (in either order).
func Interval(lo, hi int) Slot {
	return Slot{Kind: SlotInterval, Lo: lo, Hi: hi}
}

// Bit is the shared BIT sentinel slot.
var Bit = Slot{Kind: SlotBit}

// End is the shared sequence-terminator sentinel slot.
var End = Slot{Kind: SlotEnd}

func within(value, a, b int) bool {
	if a < b {
		return a <= value && value <= b
	}
	return b <= value && value <= a
}

// over reports whether value lies strictly beyond both ends of [a,b], on
// the same side as a and b's sign - i.e. value is "too much" of this slot,
// with some left over for the next step.
func over(value, a, b int) bool {
	if a > 0 && value < a {
		return false
	}
	if a < 0 && value > a {
		return false
	}
	if b > 0 && value < b {
		return false
	}
	if b < 0 && value > b {
		return false
	}
	return true
}

func absMin(a, b int) int {
	if abs(a) < abs(b) {
		return a
	}
	return b
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
