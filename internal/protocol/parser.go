package protocol

// Table describes one protocol's main sequence and its two bit
// sub-sequences, plus the longest legal interval (used to reject a value
// that is too long to possibly start a sequence).
type Table struct {
	Name string
	Main []Slot
	Zero []Slot
	One  []Slot
	Max  int
}

// result mirrors the source's complete/proceed/fail trio for a single
// sequence step.
type result int

const (
	resultFail     result = -1
	resultComplete result = 0
	resultProceed  result = 1
)

// seqWithin matches *value against seq[pos], consuming all of it (within),
// part of it and leaving a remainder in *value (over), or failing.
// pos==0 additionally rejects a value whose magnitude already exceeds max:
// a pulse longer than any legal one cannot start a sequence.
func seqWithin(value *int, seq []Slot, pos, max int) result {
	s := seq[pos]
	if within(*value, s.Lo, s.Hi) {
		*value = 0
		return resultComplete
	}
	if over(*value, s.Lo, s.Hi) && (pos > 0 || abs(*value) < max) {
		*value -= (s.Lo + s.Hi) / 2
		return resultProceed
	}
	*value = 0
	return resultFail
}

func seqComplete(seq []Slot, pos int) bool {
	return seq[pos].Kind == SlotEnd
}

// State is the mutable parsing position for one (protocol, polarity)
// instance. Its zero value is ready to parse.
type State struct {
	mainPos  int
	zeroPos  int
	onePos   int
	Encoding uint32
}

const posFailed = -1

func (st *State) reset() {
	st.mainPos = 0
	st.zeroPos = 0
	st.onePos = 0
}

// step consumes (all or part of) *value against t from the current state,
// reporting whether the sequence just completed, needs more input, or
// failed and was reset to the start.
func step(value *int, t *Table, st *State) result {
	if st.mainPos == 0 {
		st.Encoding = 0
	}

	if t.Main[st.mainPos].Kind == SlotBit {
		zeroValue := *value
		isZero := resultFail
		if st.zeroPos != posFailed {
			isZero = seqWithin(&zeroValue, t.Zero, st.zeroPos, t.Max)
			if isZero == resultFail {
				st.zeroPos = posFailed
			} else {
				st.zeroPos++
				if seqComplete(t.Zero, st.zeroPos) {
					isZero = resultComplete
				} else {
					isZero = resultProceed
				}
			}
		}

		oneValue := *value
		isOne := resultFail
		if st.onePos != posFailed {
			isOne = seqWithin(&oneValue, t.One, st.onePos, t.Max)
			if isOne == resultFail {
				st.onePos = posFailed
			} else {
				st.onePos++
				if seqComplete(t.One, st.onePos) {
					isOne = resultComplete
				} else {
					isOne = resultProceed
				}
			}
		}

		// only one leftover may come out of this step: the branch that
		// consumed more of value wins, the other fails.
		*value = absMin(zeroValue, oneValue)
		if zeroValue != *value {
			st.zeroPos = posFailed
		}
		if oneValue != *value {
			st.onePos = posFailed
		}

		if st.zeroPos == posFailed && st.onePos == posFailed {
			*value = 0
			st.reset()
			return resultFail
		}

		if isZero != resultComplete && isOne != resultComplete {
			return resultProceed
		}

		// tie-break: bit 1 wins unless only bit 0 completed.
		bit := uint32(1)
		if isZero == resultComplete {
			bit = 0
		}
		if isOne == resultComplete {
			bit = 1
		}
		st.Encoding = (st.Encoding << 1) | bit
		st.zeroPos = 0
		st.onePos = 0
		st.mainPos++
	} else if seqWithin(value, t.Main, st.mainPos, t.Max) != resultFail {
		st.mainPos++
	} else {
		st.mainPos = 0
		return resultFail
	}

	if seqComplete(t.Main, st.mainPos) {
		st.mainPos = 0
		return resultComplete
	}
	return resultProceed
}

// Feed drives value fully through t, returning the encoding and true on
// the first completed sequence. A failure that follows partial progress
// retries the original value once more from a reset state, so a value
// that is only legal as the start of a new sequence is not silently
// dropped. A failure from the start state discards the remainder of
// value.
func Feed(value int, t *Table, st *State) (encoding uint32, completed bool) {
	orig := value
	origPos := st.mainPos
	for {
		res := step(&value, t, st)
		if res == resultComplete {
			return st.Encoding, true
		}
		if value == 0 || res == resultFail {
			if res == resultFail && origPos != 0 {
				return Feed(orig, t, st)
			}
			return 0, false
		}
	}
}
