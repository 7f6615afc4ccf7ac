package protocol

// instance pairs one protocol table with the parsing state for one
// polarity (positive or inverted) and the function that turns a completed
// encoding into a Key.
type instance struct {
	table    *Table
	state    State
	decode   func(encoding uint32) Key
	inverted bool
}

// Parser holds one parsing instance per (protocol, polarity) pair and
// tries them, in table order, positive polarity before inverted, against
// every incoming value. This mirrors the source's protocols_value: the
// first instance to complete on a given call wins and is returned: the
// others are left exactly where they were, to be caught up by later
// values. Distinct protocols produce materially different timings, so two
// genuinely completing on the same value in practice does not happen.
type Parser struct {
	instances []instance
}

// NewParser builds a Parser with one instance of every protocol and its
// polarity-inverted twin, in the order listed in the protocol table.
func NewParser() *Parser {
	defs := []struct {
		table  *Table
		decode func(uint32) Key
	}{
		{NECTable, func(e uint32) Key { return necKey(NEC, e) }},
		{NECRepeatTable, func(uint32) Key { return necRepeatKey(NEC) }},
		{NEC2Table, func(e uint32) Key { return necKey(NEC2, e) }},
		{NEC2RepeatTable, func(uint32) Key { return necRepeatKey(NEC2) }},
		{SharpTable, sharpKey},
		{Sony12Table, sony12Key},
		{Sony20Table, sony20Key},
		{RC5Table, rc5Key},
	}

	p := &Parser{}
	for _, d := range defs {
		p.instances = append(p.instances,
			instance{table: d.table, decode: d.decode, inverted: false},
			instance{table: d.table, decode: d.decode, inverted: true},
		)
	}
	return p
}

// Feed offers value to every protocol instance in order, returning the
// first Key any of them completes.
func (p *Parser) Feed(value int) (Key, bool) {
	for i := range p.instances {
		inst := &p.instances[i]
		v := value
		if inst.inverted {
			v = -value
		}
		if encoding, ok := Feed(v, inst.table, &inst.state); ok {
			return inst.decode(encoding), true
		}
	}
	return Key{}, false
}
