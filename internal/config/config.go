// Package config resolves command-line flags into the structs the rest
// of the module needs, following the teacher's pflag.StringP/IntP/BoolP
// idiom (see atest.go).
package config

import (
	"errors"

	"github.com/spf13/pflag"
)

// Recv configures soiral-recv: decode a stream of IR commands from an AU
// file or the sound card.
type Recv struct {
	Input    string // file path, "default" for microphone, "-" for stdin
	ASCII    bool
	Layout   string // layout file whose key names are printed beside decoded keys; empty disables
	LogFile  string
	Meter    bool
	ReadKeys bool // parsed but not read by soiral-recv, which never records keys
	LogLevel string
}

// ParseRecv parses os.Args-style arguments (excluding argv[0]) into a
// Recv configuration.
func ParseRecv(args []string) (*Recv, error) {
	fs := pflag.NewFlagSet("soiral-recv", pflag.ContinueOnError)
	cfg := &Recv{}
	fs.StringVarP(&cfg.Input, "input", "i", "default", "input file, \"default\" for the microphone, or \"-\" for stdin")
	fs.BoolVarP(&cfg.ASCII, "ascii", "a", false, "read/write the log as whitespace-separated ASCII integers instead of AU")
	fs.StringVarP(&cfg.Layout, "layout", "l", "", "layout file whose key names are printed beside decoded keys")
	fs.StringVarP(&cfg.LogFile, "log", "L", "", "save raw input samples to this AU (or, with -ascii, text) file")
	fs.BoolVarP(&cfg.Meter, "meter", "m", false, "show a VU meter of the input level")
	fs.BoolVarP(&cfg.ReadKeys, "find", "r", false, "accepted for compatibility; soiral-recv only looks keys up and never records them")
	fs.StringVarP(&cfg.LogLevel, "log-level", "v", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Send configures soiral-send: encode a protocol command to PCM and play
// it or write it to an AU file.
type Send struct {
	Output      string // file path, "default" for the sound card
	Protocol    string
	Device      int
	Subdevice   int
	Function    int
	Subfunction int
	Repeat      int
	MarkEnd     int
	LogLevel    string
}

// ParseSend parses arguments into a Send configuration.
func ParseSend(args []string) (*Send, error) {
	fs := pflag.NewFlagSet("soiral-send", pflag.ContinueOnError)
	cfg := &Send{Subdevice: -1, Subfunction: -1}
	fs.StringVarP(&cfg.Output, "output", "o", "default", "output file, or \"default\" for the sound card")
	fs.StringVarP(&cfg.Protocol, "protocol", "p", "nec", "nec, nec2, sharp, sony12, sony20, rc5, hold or test")
	fs.IntVarP(&cfg.Device, "device", "d", 0, "device code")
	fs.IntVarP(&cfg.Subdevice, "subdevice", "s", -1, "subdevice code, -1 to derive it from device")
	fs.IntVarP(&cfg.Function, "function", "f", 0, "function code")
	fs.IntVarP(&cfg.Subfunction, "subfunction", "u", -1, "subfunction code, -1 to derive it from function")
	fs.IntVarP(&cfg.Repeat, "repeat", "r", 0, "number of repeat frames to send after the code")
	fs.IntVarP(&cfg.MarkEnd, "markend", "m", 0, "pad the frame with this many marker samples")
	fs.StringVarP(&cfg.LogLevel, "log-level", "v", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Layout configures soiral-layout: the interactive layout editor.
type Layout struct {
	LayoutFile string
	Input      string
	ShowOnly   bool
	ShowCodes  bool
	ShowAll    bool
	ShowCSV    bool
	ASCII      bool
	LogFile    string
	ReadKeys   bool
	LogLevel   string
}

// ParseLayout parses arguments into a Layout configuration.
func ParseLayout(args []string) (*Layout, error) {
	fs := pflag.NewFlagSet("soiral-layout", pflag.ContinueOnError)
	cfg := &Layout{ShowCodes: true, Input: "default"}
	fs.BoolVarP(&cfg.ShowOnly, "show", "s", false, "show the layout and terminate")
	fs.BoolVarP(&cfg.ShowAll, "complete", "k", false, "print complete codes when showing a layout")
	showCodesOff := fs.BoolP("no-codes", "c", false, "omit codes when showing a layout")
	fs.BoolVarP(&cfg.ShowCSV, "csv", "t", false, "print layout as csv and terminate")
	fs.StringVarP(&cfg.LogFile, "log", "L", "", "log input data to this file")
	fs.BoolVarP(&cfg.ASCII, "ascii", "f", false, "log input data as ASCII text instead of AU")
	fs.BoolVarP(&cfg.ReadKeys, "find", "r", false, "find key names instead of saving them")
	fs.StringVarP(&cfg.LogLevel, "log-level", "v", "info", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.ShowCodes = !*showCodesOff
	if cfg.ShowCSV {
		cfg.ShowOnly = true
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return nil, errMissingLayoutFile
	}
	cfg.LayoutFile = rest[0]
	if len(rest) >= 2 {
		cfg.Input = rest[1]
	}
	return cfg, nil
}

var errMissingLayoutFile = errors.New("layout file missing")
