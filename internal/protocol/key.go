package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

// ID names one of the eight protocols a Key can belong to.
type ID int

const (
	NEC ID = iota
	NECRepeat
	NEC2
	NEC2Repeat
	Sharp
	Sony12
	Sony20
	RC5
)

var idNames = [...]string{
	NEC:        "nec",
	NECRepeat:  "necrepeat",
	NEC2:       "nec2",
	NEC2Repeat: "nec2repeat",
	Sharp:      "sharp",
	Sony12:     "sony12",
	Sony20:     "sony20",
	RC5:        "rc5",
}

func (id ID) String() string {
	if int(id) < 0 || int(id) >= len(idNames) {
		return "unknown"
	}
	return idNames[id]
}

func parseID(s string) (ID, bool) {
	for i, name := range idNames {
		if name == s {
			return ID(i), true
		}
	}
	return 0, false
}

// Key is a decoded (or to-be-encoded) remote-control command. Subdevice
// and Subfunction are -1 when the protocol doesn't distinguish them from
// Device/Function (the common case: most remotes send a device byte
// that's the bitwise complement of a "subdevice" check byte, collapsed to
// a single number).
type Key struct {
	Protocol              ID
	Device, Subdevice     int
	Function, Subfunction int
	Repeat                bool
}

// Equal compares two keys, optionally ignoring the Repeat flag.
func (k Key) Equal(other Key, compareRepeat bool) bool {
	if k.Protocol != other.Protocol ||
		k.Device != other.Device ||
		k.Subdevice != other.Subdevice ||
		k.Function != other.Function ||
		k.Subfunction != other.Subfunction {
		return false
	}
	if compareRepeat && k.Repeat != other.Repeat {
		return false
	}
	return true
}

func appendCode(b *strings.Builder, code, sub int, subsep byte) {
	if code != -1 {
		if code < 0x100 {
			fmt.Fprintf(b, "0x%02X", code)
		} else {
			fmt.Fprintf(b, "0x%04X", code)
		}
	}
	if sub != -1 {
		fmt.Fprintf(b, "%c0x%02X", subsep, sub)
	}
}

// Format renders k using sep between the protocol/device/function fields
// and subsep between a code and its sub-code.
func (k Key) Format(sep, subsep byte) string {
	var b strings.Builder
	b.WriteString(k.Protocol.String())
	b.WriteByte(sep)
	appendCode(&b, k.Device, k.Subdevice, subsep)
	b.WriteByte(sep)
	appendCode(&b, k.Function, k.Subfunction, subsep)
	if k.Repeat {
		b.WriteByte(sep)
		b.WriteString("[repeat]")
	}
	return b.String()
}

// String formats k the way the original command-line tools print a key:
// space-separated fields, dash-separated sub-codes.
func (k Key) String() string {
	return k.Format(' ', '-')
}

// ParseKey parses a key in the textual form
// protocol,device[-subdevice],function[-subfunction][,[repeat]] using sep
// and subsep as the separators.
func ParseKey(s string, sep, subsep byte) (Key, error) {
	fields := strings.Split(s, string(sep))
	if len(fields) < 3 {
		return Key{}, fmt.Errorf("protocol: %q: need at least protocol, device and function fields", s)
	}

	id, ok := parseID(fields[0])
	if !ok {
		return Key{}, fmt.Errorf("protocol: %q: unknown protocol", fields[0])
	}

	device, subdevice, err := parseCode(fields[1], subsep)
	if err != nil {
		return Key{}, err
	}
	function, subfunction, err := parseCode(fields[2], subsep)
	if err != nil {
		return Key{}, err
	}

	repeat := len(fields) > 3 && fields[3] == "[repeat]"

	return Key{
		Protocol:    id,
		Device:      device,
		Subdevice:   subdevice,
		Function:    function,
		Subfunction: subfunction,
		Repeat:      repeat,
	}, nil
}

func parseCode(s string, subsep byte) (code, sub int, err error) {
	parts := strings.SplitN(s, string(subsep), 2)
	code64, err := strconv.ParseInt(parts[0], 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("protocol: %q: %w", parts[0], err)
	}
	if len(parts) == 1 {
		return int(code64), -1, nil
	}
	sub64, err := strconv.ParseInt(parts[1], 0, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("protocol: %q: %w", parts[1], err)
	}
	return int(code64), int(sub64), nil
}
