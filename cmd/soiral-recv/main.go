// Command soiral-recv decodes IR remote-control commands from an AU
// recording, stdin, or the sound card's microphone input, printing each
// decoded key as it arrives.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/sgerwk/soiral/internal/audiodev"
	"github.com/sgerwk/soiral/internal/config"
	"github.com/sgerwk/soiral/internal/filter"
	"github.com/sgerwk/soiral/internal/layout"
	"github.com/sgerwk/soiral/internal/logging"
	"github.com/sgerwk/soiral/internal/protocol"
	"github.com/sgerwk/soiral/internal/status"
)

func main() {
	cfg, err := config.ParseRecv(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel})

	var names *layout.Layout
	if cfg.Layout != "" {
		f, err := os.Open(cfg.Layout)
		if err != nil {
			logger.Fatalf("opening layout: %v", err)
		}
		names, err = layout.Read(f)
		f.Close()
		if err != nil {
			logger.Fatalf("reading layout: %v", err)
		}
	}

	if err := run(cfg, names, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(cfg *config.Recv, names *layout.Layout, logger *log.Logger) error {
	var source io.Reader
	var closer io.Closer
	var st status.Status

	switch cfg.Input {
	case "default":
		dev, err := audiodev.OpenCapture()
		if err != nil {
			return fmt.Errorf("opening microphone: %w", err)
		}
		defer dev.Close()
		return runFromDevice(cfg, dev, names, logger)
	case "-":
		source = os.Stdin
	default:
		f, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		source = f
		closer = f
	}
	if closer != nil {
		defer closer.Close()
	}

	read, err := filter.NewRead(source, cfg.ASCII)
	if err != nil {
		return fmt.Errorf("opening input stream: %w", err)
	}

	logFilter, err := openLog(cfg)
	if err != nil {
		return err
	}

	var meter *filter.Scale
	if cfg.Meter {
		meter = filter.NewScale(os.Stderr)
	}

	best := filter.NewBest(logFilter, logger)
	parser := protocol.NewParser()

	for {
		out, ended, absorbed := filter.Run(read, 0, &st)
		if ended {
			break
		}
		if absorbed {
			continue
		}
		if meter != nil {
			filter.Run(meter, out, &st)
		}
		out, ended, absorbed = filter.Run(best, out, &st)
		if ended {
			break
		}
		if absorbed {
			continue
		}
		reportKey(out, parser, names)
	}

	read.End(&st)
	v := best.End(&st)
	reportKey(v, parser, names)
	return nil
}

func runFromDevice(cfg *config.Recv, dev *audiodev.Device, names *layout.Layout, logger *log.Logger) error {
	logFilter, err := openLog(cfg)
	if err != nil {
		return err
	}
	best := filter.NewBest(logFilter, logger)
	parser := protocol.NewParser()
	var st status.Status
	ctx := context.Background()

	for {
		sample, ok, err := dev.ReadFrame(ctx)
		if err != nil || !ok {
			break
		}
		out, ended, absorbed := filter.Run(best, sample, &st)
		if ended {
			break
		}
		if absorbed {
			continue
		}
		reportKey(out, parser, names)
	}
	v := best.End(&st)
	reportKey(v, parser, names)
	return nil
}

func openLog(cfg *config.Recv) (*filter.Log, error) {
	if cfg.LogFile == "" {
		return nil, nil
	}
	f, err := os.Create(cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	if cfg.ASCII {
		return filter.NewLogText(f), nil
	}
	return filter.NewLogAU(f)
}

func reportKey(value int, parser *protocol.Parser, names *layout.Layout) {
	key, ok := parser.Feed(value)
	if !ok {
		return
	}
	if names == nil {
		fmt.Println(key.String())
		return
	}
	pos := names.Find("", &key)
	if pos == -1 {
		fmt.Printf("not found: %s\n", key.String())
		return
	}
	fmt.Printf("%s: %s\n", names.Entries[pos].Name, key.String())
}
