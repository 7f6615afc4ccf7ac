// Command soiral-layout interactively fills in a layout file's codes by
// listening for remote-control commands and recording each one against
// the key currently prompted for, or (with -find) looks up which named
// key a received command corresponds to.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/sgerwk/soiral/internal/audiodev"
	"github.com/sgerwk/soiral/internal/config"
	"github.com/sgerwk/soiral/internal/filter"
	"github.com/sgerwk/soiral/internal/keyboard"
	"github.com/sgerwk/soiral/internal/layout"
	"github.com/sgerwk/soiral/internal/logging"
	"github.com/sgerwk/soiral/internal/protocol"
	"github.com/sgerwk/soiral/internal/status"
)

func main() {
	cfg, err := config.ParseLayout(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel})

	layoutFile, err := os.OpenFile(cfg.LayoutFile, os.O_RDWR, 0)
	if err != nil {
		logger.Fatalf("opening layout file: %v", err)
	}
	defer layoutFile.Close()

	l, err := layout.Read(layoutFile)
	if err != nil {
		logger.Fatalf("reading layout: %v", err)
	}

	if cfg.ShowCSV {
		if err := layout.WriteCSV(os.Stdout, l); err != nil {
			logger.Fatal(err)
		}
		return
	}

	if err := layout.Print(os.Stdout, l, cfg.ShowCodes, cfg.ShowAll); err != nil {
		logger.Fatal(err)
	}
	if cfg.ShowOnly {
		return
	}

	if err := edit(cfg, l, layoutFile, logger); err != nil {
		logger.Fatal(err)
	}
}

// source abstracts where decoded values come from: a file/stdin via the
// filter.Read source filter, or the microphone via audiodev.
type source interface {
	next(st *status.Status) (value int, ended bool)
	end(st *status.Status) int
}

type fileSource struct{ r *filter.Read }

func (s fileSource) next(st *status.Status) (int, bool) {
	out, ended, absorbed := filter.Run(s.r, 0, st)
	if absorbed {
		st.HasOut = false
		return 0, false
	}
	return out, ended
}

func (s fileSource) end(st *status.Status) int { return s.r.End(st) }

type micSource struct {
	dev *audiodev.Device
	ctx context.Context
}

func (s micSource) next(st *status.Status) (int, bool) {
	sample, ok, err := s.dev.ReadFrame(s.ctx)
	if err != nil || !ok {
		return 0, true
	}
	st.Reset()
	return sample, false
}

func (s micSource) end(*status.Status) int { return 0 }

func openSource(cfg *config.Layout) (source, func(), error) {
	if cfg.Input == "default" {
		dev, err := audiodev.OpenCapture()
		if err != nil {
			return nil, nil, err
		}
		return micSource{dev: dev, ctx: context.Background()}, func() { dev.Close() }, nil
	}

	var f *os.File
	var err error
	if cfg.Input == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(cfg.Input)
		if err != nil {
			return nil, nil, err
		}
	}
	r, err := filter.NewRead(f, cfg.ASCII)
	if err != nil {
		return nil, nil, err
	}
	return fileSource{r: r}, func() {}, nil
}

func openLog(cfg *config.Layout) (*filter.Log, error) {
	if cfg.LogFile == "" {
		return nil, nil
	}
	f, err := os.Create(cfg.LogFile)
	if err != nil {
		return nil, err
	}
	if cfg.ASCII {
		return filter.NewLogText(f), nil
	}
	return filter.NewLogAU(f)
}

func edit(cfg *config.Layout, l *layout.Layout, layoutFile *os.File, logger *log.Logger) error {
	src, closeSrc, err := openSource(cfg)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer closeSrc()

	logFilter, err := openLog(cfg)
	if err != nil {
		return err
	}
	best := filter.NewBest(logFilter, logger)
	parser := protocol.NewParser()

	kbd, err := keyboard.Open()
	if err != nil {
		return fmt.Errorf("opening keyboard: %w", err)
	}
	defer kbd.Close()
	var mailbox keyboard.Mailbox
	kbd.Start(&mailbox)

	pos := -1
	skipKnown := true
	save := true
	increase := true
	var lastKey *protocol.Key
	var st status.Status

	prompt := func() {
		if cfg.ReadKeys {
			return
		}
		fmt.Printf("press key: %-10s       p=previous n=next v=view\n", l.Entries[pos].Name)
	}

	for {
		if !cfg.ReadKeys {
			next := l.Move(pos, boolDir(increase), skipKnown)
			if l.Entries[next].Key != nil && lastKey != nil && next == pos {
				fmt.Println("layout complete")
				return finish(src, best, &st, l, layoutFile, save)
			}
			if next != pos {
				pos = next
				prompt()
			}
		}

		var key protocol.Key
		var completed bool
		for !completed {
			switch mailbox.Take() {
			case 'v':
				layout.Print(os.Stdout, l, cfg.ShowCodes, cfg.ShowAll)
				prompt()
			case 'p':
				if !cfg.ReadKeys {
					skipKnown = false
					pos = l.Move(pos, -1, skipKnown)
					lastKey = nil
					prompt()
				}
			case 'n':
				if !cfg.ReadKeys {
					skipKnown = false
					pos = l.Move(pos, 1, skipKnown)
					lastKey = nil
					prompt()
				}
			case 'w':
				if !cfg.ReadKeys {
					layoutFile.Seek(0, 0)
					layoutFile.Truncate(0)
					layout.Write(layoutFile, l)
					fmt.Println("saved!")
					prompt()
				}
			case 'x':
				save = false
				return finish(src, best, &st, l, layoutFile, save)
			case 'q':
				return finish(src, best, &st, l, layoutFile, save)
			}

			value, ended := src.next(&st)
			if ended {
				return finish(src, best, &st, l, layoutFile, save)
			}
			if !st.HasOut {
				continue
			}
			out, bended, absorbed := filter.Run(best, value, &st)
			if bended {
				return finish(src, best, &st, l, layoutFile, save)
			}
			if absorbed {
				continue
			}
			key, completed = parser.Feed(out)
			if completed && key.Repeat {
				completed = false
			}
			if completed && !l.Preset.Matches(key) {
				completed = false
			}
		}

		if cfg.ReadKeys {
			if p := l.Find("", &key); p == -1 {
				fmt.Printf("not found: %s\n", key.String())
			} else {
				fmt.Printf("%s: %s\n", l.Entries[p].Name, key.String())
			}
			continue
		}

		if lastKey == nil || !key.Equal(*lastKey, false) {
			l.Replace(pos, key)
			lastKey = &key
			fmt.Println(l.Entries[pos].String())
			increase = true
		} else {
			increase = false
		}
	}
}

func boolDir(increase bool) int {
	if increase {
		return 1
	}
	return -1
}

func finish(src source, best *filter.Best, st *status.Status, l *layout.Layout, layoutFile *os.File, save bool) error {
	src.end(st)
	best.End(st)
	layout.Print(os.Stdout, l, true, false)
	if !save {
		return nil
	}
	if _, err := layoutFile.Seek(0, 0); err != nil {
		return err
	}
	if err := layoutFile.Truncate(0); err != nil {
		return err
	}
	return layout.Write(layoutFile, l)
}
