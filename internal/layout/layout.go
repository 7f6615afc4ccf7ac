// Package layout maps named remote-control keys to decoded protocol
// codes: a text file of key names is read, walked key by key while codes
// arrive from a protocol decoder, and written back out with codes filled
// in. Filler text (blank runs and newlines) between key names is carried
// through byte for byte, untouched.
package layout

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sgerwk/soiral/internal/protocol"
)

// Preset is optional YAML front matter at the top of a layout file,
// naming the remote it was captured from. soiral-layout uses it to
// reject codes from a different, interfering remote while filling in a
// blank layout.
type Preset struct {
	Protocol string `yaml:"protocol"`
	Device   int    `yaml:"device"`
}

// Matches reports whether k could have come from the remote p describes.
// A nil p matches anything; one with no protocol set matches any
// protocol, but the key's device must still equal p.Device.
func (p *Preset) Matches(k protocol.Key) bool {
	if p == nil {
		return true
	}
	if p.Protocol != "" && k.Protocol.String() != p.Protocol {
		return false
	}
	return k.Device == p.Device
}

// NamedKey is either a named, possibly-coded key or a filler run (a
// sequence of spaces, or a single newline) preserved from the input.
type NamedKey struct {
	Name string
	Key  *protocol.Key
}

// IsFiller reports whether nk is a blank run or newline rather than a
// real key name.
func (nk NamedKey) IsFiller() bool {
	return nk.Name == "" || nk.Name[0] == ' ' || nk.Name[0] == '\n'
}

// String renders nk the way it is written back to a layout file:
// name, or name|code when a code is set.
func (nk NamedKey) String() string {
	if nk.Key == nil {
		return nk.Name
	}
	return nk.Name + "|" + nk.Key.Format(',', '-')
}

// parseNamedKey parses one NAME or NAME|CODE token.
func parseNamedKey(token string) (NamedKey, error) {
	name, code, hasCode := strings.Cut(token, "|")
	nk := NamedKey{Name: name}
	if !hasCode {
		return nk, nil
	}
	key, err := protocol.ParseKey(code, ',', '-')
	if err != nil {
		return NamedKey{}, err
	}
	nk.Key = &key
	return nk, nil
}

// Layout is an ordered sequence of named keys and filler runs, the
// in-memory form of a layout file.
type Layout struct {
	Entries []NamedKey
	Preset  *Preset
}

// New returns an empty layout.
func New() *Layout {
	return &Layout{}
}

// Add appends an entry.
func (l *Layout) Add(nk NamedKey) {
	l.Entries = append(l.Entries, nk)
}

// Read parses a layout file: runs of spaces and single newlines become
// filler entries, and every other whitespace-delimited token is parsed as
// a NAME or NAME|CODE key entry.
func Read(r io.Reader) (*Layout, error) {
	br := bufio.NewReader(r)
	l := New()

	preset, err := readPreset(br)
	if err != nil {
		return nil, err
	}
	l.Preset = preset

	for {
		spaces := 0
		var c rune
		var err error
		for {
			c, _, err = br.ReadRune()
			if err != nil || c != ' ' {
				break
			}
			spaces++
		}
		if spaces > 0 {
			l.Add(NamedKey{Name: strings.Repeat(" ", spaces)})
		}

		if err == io.EOF {
			return l, nil
		}
		if err != nil {
			return nil, err
		}

		if c == '\n' {
			l.Add(NamedKey{Name: "\n"})
			continue
		}

		var tok strings.Builder
		tok.WriteRune(c)
		for {
			c, _, err = br.ReadRune()
			if err != nil || c == ' ' || c == '\n' {
				if c == ' ' || c == '\n' {
					_ = br.UnreadRune()
				}
				break
			}
			tok.WriteRune(c)
		}
		nk, perr := parseNamedKey(tok.String())
		if perr != nil {
			return nil, fmt.Errorf("layout: %w", perr)
		}
		l.Add(nk)
		if err == io.EOF {
			return l, nil
		}
	}
}

// readPreset consumes a leading "---\n"-delimited YAML block, if present,
// and parses it as a Preset. It returns (nil, nil) when the file has no
// front matter.
func readPreset(br *bufio.Reader) (*Preset, error) {
	head, err := br.Peek(4)
	if err != nil || string(head) != "---\n" {
		return nil, nil
	}
	if _, err := br.Discard(4); err != nil {
		return nil, err
	}

	var body strings.Builder
	for {
		line, err := br.ReadString('\n')
		if strings.TrimRight(line, "\n") == "---" {
			break
		}
		body.WriteString(line)
		if err != nil {
			return nil, fmt.Errorf("layout: unterminated front matter")
		}
	}

	var preset Preset
	if err := yaml.Unmarshal([]byte(body.String()), &preset); err != nil {
		return nil, fmt.Errorf("layout: front matter: %w", err)
	}
	return &preset, nil
}

// Write renders the layout back out exactly as Read would reparse it,
// filler bytes untouched and keys rendered as NAME or NAME|CODE.
func Write(w io.Writer, l *Layout) error {
	bw := bufio.NewWriter(w)
	if l.Preset != nil {
		data, err := yaml.Marshal(l.Preset)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "---\n%s---\n", data); err != nil {
			return err
		}
	}
	for _, nk := range l.Entries {
		if _, err := bw.WriteString(nk.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Find returns the index of the first entry matching name (if non-empty)
// and/or key (if non-nil, compared ignoring the Repeat flag), or -1.
func (l *Layout) Find(name string, key *protocol.Key) int {
	for i, nk := range l.Entries {
		if name != "" && nk.Name != name {
			continue
		}
		if key != nil && (nk.Key == nil || !nk.Key.Equal(*key, false)) {
			continue
		}
		return i
	}
	return -1
}

// Replace sets the code at pos, discarding whatever was there before.
func (l *Layout) Replace(pos int, key protocol.Key) {
	l.Entries[pos].Key = &key
}

func (l *Layout) isValid(pos int) bool { return pos >= 0 && pos < len(l.Entries) }

func (l *Layout) isFiller(pos int) bool {
	return l.isValid(pos) && l.Entries[pos].IsFiller()
}

func (l *Layout) isCoded(pos int) bool {
	return l.isValid(pos) && l.Entries[pos].Key != nil
}

// Move walks from pos in direction (+1 or -1), skipping filler entries
// and, when skipKnown is set, entries that already have a code. If the
// walk runs off either end, it returns the last coded entry it passed, or
// pos if it passed none.
func (l *Layout) Move(pos, direction int, skipKnown bool) int {
	last := pos
	next := pos
	for {
		next += direction
		if l.isCoded(next) {
			last = next
		}
		if !l.isFiller(next) && !(skipKnown && l.isCoded(next)) {
			break
		}
	}
	if l.isValid(next) {
		return next
	}
	return last
}

// RemoteDevices returns one line per distinct (protocol, device,
// subdevice) triple found among the layout's coded keys, in first-seen
// order: the set of physical remotes a layout's keys were captured from.
func (l *Layout) RemoteDevices() []string {
	type dev struct {
		protocol.ID
		device, subdevice int
	}
	seen := map[dev]bool{}
	var lines []string
	for _, nk := range l.Entries {
		if nk.Key == nil {
			continue
		}
		d := dev{nk.Key.Protocol, nk.Key.Device, nk.Key.Subdevice}
		if seen[d] {
			continue
		}
		seen[d] = true
		sub := d.subdevice
		if sub == -1 {
			sub = ^d.device & 0xFF
		}
		lines = append(lines, fmt.Sprintf("%s,0x%02X-0x%02X", d.ID, d.device, sub))
	}
	return lines
}

// WriteCSV exports the layout's coded keys ordered by function code, one
// row per distinct function code: name,protocol,device,subdevice,function.
// Where several keys share a function code, only the first of them in
// layout order is written.
func WriteCSV(w io.Writer, l *Layout) error {
	bw := bufio.NewWriter(w)
	prev := -1
	for {
		next := -1
		cur := -1
		for i, nk := range l.Entries {
			if nk.IsFiller() || nk.Key == nil {
				continue
			}
			if nk.Key.Function <= prev {
				continue
			}
			if next == -1 || nk.Key.Function < next {
				next = nk.Key.Function
				cur = i
			}
		}
		prev = next
		if next == -1 {
			break
		}

		nk := l.Entries[cur]
		name, _, _ := strings.Cut(nk.Name, ",")
		subdevice := nk.Key.Subdevice
		if subdevice == -1 {
			subdevice = ^nk.Key.Device & 0xFF
		}
		fmt.Fprintf(bw, "%s,%s,%d,%d,%d\n",
			name, nk.Key.Protocol, nk.Key.Device, subdevice, nk.Key.Function)
	}
	return bw.Flush()
}

// Print writes the layout to w, substituting each key's rendering
// according to codes/complete: codes=false prints just the names,
// complete=true prints a key's full protocol,device,function form, and
// the default prints only the function code (the common case of a
// single-remote layout where protocol and device are implied).
func Print(w io.Writer, l *Layout, codes, complete bool) error {
	bw := bufio.NewWriter(w)
	if codes && !complete {
		for _, line := range l.RemoteDevices() {
			fmt.Fprintln(bw, line)
		}
	}

	codesRow := false
	lastLine := -1
	for pos := 0; pos < len(l.Entries); pos++ {
		nk := l.Entries[pos]
		var field string
		switch {
		case nk.Key == nil || !codes:
			field = ""
		case complete:
			field = nk.Key.Format(',', '-')
		default:
			field = funcCode(nk.Key)
		}

		width := len(nk.Name)
		if len(field) > width {
			width = len(field)
		}

		switch {
		case nk.Name == "\n":
			fmt.Fprint(bw, nk.Name)
			if !codesRow && codes {
				pos = lastLine
				codesRow = true
			} else {
				lastLine = pos
				codesRow = false
			}
		case nk.Name != "" && nk.Name[0] == ' ':
			fmt.Fprint(bw, nk.Name)
		case !codesRow:
			fmt.Fprintf(bw, "%-*s", width, nk.Name)
		default:
			fmt.Fprintf(bw, "%-*s", width, field)
		}
	}
	return bw.Flush()
}

func funcCode(k *protocol.Key) string {
	if k.Subfunction == -1 {
		return "0x" + strconv.FormatInt(int64(k.Function), 16)
	}
	return fmt.Sprintf("0x%02X-0x%02X", k.Function, k.Subfunction)
}
