package protocol

// bitreverse reverses the 32 bits of val, the way every protocol's raw
// encoding (built MSB-first as bits arrive) is turned back into an
// LSB-first byte layout before fields are extracted.
func bitreverse(val uint32) uint32 {
	var rev uint32
	for i := 0; i < 32; i++ {
		rev = (rev << 1) | (val & 1)
		val >>= 1
	}
	return rev
}

var necZero = []Slot{Interval(20, 30), Interval(-20, -30), End}
var necOne = []Slot{Interval(20, 30), Interval(-70, -80), End}

func necMain() []Slot {
	main := []Slot{Interval(380, 430), Interval(-180, -220)}
	for i := 0; i < 32; i++ {
		main = append(main, Bit)
	}
	main = append(main, Interval(20, 30), End)
	return main
}

// NECTable is the NEC protocol: 32-bit code, MSB bit-0/bit-1 timings
// shared with NEC2.
var NECTable = &Table{Name: "nec", Main: necMain(), Zero: necZero, One: necOne, Max: 430}

// NECRepeatTable matches the short "still held down" frame NEC remotes
// send every ~108ms instead of retransmitting the full code.
var NECRepeatTable = &Table{
	Name: "necrepeat",
	Main: []Slot{Interval(380, 430), Interval(-90, -110), Interval(20, 30), End},
	Max:  430,
}

func nec2Main() []Slot {
	main := []Slot{Interval(180, 220), Interval(-180, -220)}
	for i := 0; i < 32; i++ {
		main = append(main, Bit)
	}
	main = append(main, Interval(20, 30), End)
	return main
}

// NEC2Table is NEC with a shorter leading pulse.
var NEC2Table = &Table{Name: "nec2", Main: nec2Main(), Zero: necZero, One: necOne, Max: 220}

// NEC2RepeatTable is NEC2's repeat frame.
var NEC2RepeatTable = &Table{
	Name: "nec2repeat",
	Main: []Slot{Interval(180, 220), Interval(-90, -110), Interval(20, 30), End},
	Max:  220,
}

func sharpMain() []Slot {
	main := make([]Slot, 0, 16)
	for i := 0; i < 14; i++ {
		main = append(main, Bit)
	}
	main = append(main, Interval(8, 18), End)
	return main
}

// SharpTable has no lead/separator pulse: every frame starts directly
// with its first bit.
var SharpTable = &Table{
	Name: "sharp",
	Main: sharpMain(),
	Zero: []Slot{Interval(8, 18), Interval(-28, -38), End},
	One:  []Slot{Interval(8, 18), Interval(-73, -82), End},
	Max:  73,
}

var sonyZero = []Slot{Interval(-20, -32), Interval(20, 32), End}
var sonyOne = []Slot{Interval(-20, -32), Interval(48, 58), End}

func sony12Main() []Slot {
	main := []Slot{Interval(90, 120)}
	for i := 0; i < 12; i++ {
		main = append(main, Bit)
	}
	main = append(main, Interval(-900, -1200), End)
	return main
}

// Sony12Table is the 12-bit SIRC variant.
var Sony12Table = &Table{Name: "sony12", Main: sony12Main(), Zero: sonyZero, One: sonyOne, Max: 120}

func sony20Main() []Slot {
	main := []Slot{Interval(90, 120)}
	for i := 0; i < 20; i++ {
		main = append(main, Bit)
	}
	main = append(main, End)
	return main
}

// Sony20Table is the 20-bit SIRC variant; unlike Sony12 it has no fixed
// trailer, the frame simply ends after the last bit.
var Sony20Table = &Table{Name: "sony20", Main: sony20Main(), Zero: sonyZero, One: sonyOne, Max: 120}

func rc5Main() []Slot {
	main := []Slot{Interval(35, 45)}
	for i := 0; i < 12; i++ {
		main = append(main, Bit)
	}
	main = append(main, End)
	return main
}

// RC5Table is the biphase (Manchester) RC5 protocol: a lone anchor
// half-period establishing the clock, followed by 12 biphase bits
// (toggle, device, function), with no separate lead pulse since biphase
// already encodes its own clock in every bit.
var RC5Table = &Table{
	Name: "rc5",
	Main: rc5Main(),
	Zero: []Slot{Interval(35, 45), Interval(-35, -45), End},
	One:  []Slot{Interval(-35, -45), Interval(35, 45), End},
	Max:  45 * 2,
}

// necSub splits 16 bits of a bit-reversed encoding into a code byte and
// its complement-check sub-byte, the way NEC's device and function bytes
// are each immediately followed by their own bitwise complement.
func necSub(reversed uint32, offset uint) (code, sub int) {
	code = int((reversed >> offset) & 0xFF)
	sub = int((reversed >> (offset + 8)) & 0xFF)
	if code == (^sub & 0xFF) {
		sub = -1
	}
	return code, sub
}

func necKey(id ID, encoding uint32) Key {
	reversed := bitreverse(encoding)
	device, subdevice := necSub(reversed, 0)
	function, subfunction := necSub(reversed, 16)
	return Key{Protocol: id, Device: device, Subdevice: subdevice, Function: function, Subfunction: subfunction}
}

func necRepeatKey(id ID) Key {
	return Key{Protocol: id, Device: -1, Subdevice: -1, Function: -1, Subfunction: -1, Repeat: true}
}

func sharpKey(encoding uint32) Key {
	reversed := bitreverse(encoding)
	device := int((reversed >> 18) & 0x1F)
	function := int((reversed >> 23) & 0xFF)
	reversedFrame := encoding&0x1 == 0
	if reversedFrame {
		function = ^function & 0xFF
	}
	return Key{Protocol: Sharp, Device: device, Subdevice: -1, Function: function, Subfunction: -1, Repeat: reversedFrame}
}

func sonyKey(id ID, reversed uint32) Key {
	return Key{
		Protocol:    id,
		Device:      int((reversed >> 7) & 0x1F),
		Subdevice:   int(reversed >> (7 + 5)),
		Function:    int(reversed & 0x7F),
		Subfunction: -1,
	}
}

func sony12Key(encoding uint32) Key {
	return sonyKey(Sony12, bitreverse(encoding)>>(12+8))
}

func sony20Key(encoding uint32) Key {
	return sonyKey(Sony20, bitreverse(encoding)>>12)
}

func rc5Key(encoding uint32) Key {
	return Key{
		Protocol:    RC5,
		Device:      int((encoding >> 6) & 0x1F),
		Subdevice:   -1,
		Function:    int(encoding >> 0 & 0x3F),
		Subfunction: -1,
		Repeat:      (encoding>>11)&0x01 != 0,
	}
}
