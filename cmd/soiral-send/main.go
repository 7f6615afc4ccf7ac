// Command soiral-send encodes a single remote-control command to PCM and
// plays it on the sound card, or writes it to an AU file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sgerwk/soiral/internal/au"
	"github.com/sgerwk/soiral/internal/audiodev"
	"github.com/sgerwk/soiral/internal/config"
	"github.com/sgerwk/soiral/internal/logging"
	"github.com/sgerwk/soiral/internal/protocol"
	"github.com/sgerwk/soiral/internal/synth"
)

func main() {
	cfg, err := config.ParseSend(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel})

	s := synth.NewSession(sessionConfig(cfg))
	s.Logger = logger

	if err := encode(cfg, s); err != nil {
		logger.Fatal(err)
	}

	if err := output(cfg, s); err != nil {
		logger.Fatal(err)
	}
}

func sessionConfig(cfg *config.Send) *synth.Config {
	c := synth.DefaultConfig()
	c.MarkEnd = cfg.MarkEnd
	return c
}

func encode(cfg *config.Send, s *synth.Session) error {
	switch cfg.Protocol {
	case "nec":
		synth.NECCode(s, protocol.NEC, cfg.Device, cfg.Subdevice, cfg.Function, cfg.Subfunction)
		for i := 0; i < cfg.Repeat; i++ {
			synth.NECRepeat(s, protocol.NEC)
		}
	case "nec2":
		synth.NECCode(s, protocol.NEC2, cfg.Device, cfg.Subdevice, cfg.Function, cfg.Subfunction)
		for i := 0; i < cfg.Repeat; i++ {
			synth.NECRepeat(s, protocol.NEC2)
		}
	case "sharp":
		synth.SharpCode(s, cfg.Device, cfg.Function)
	case "sony12":
		synth.Sony12Code(s, cfg.Device, cfg.Function)
	case "sony20":
		synth.Sony20Code(s, cfg.Device, cfg.Subdevice, cfg.Function)
	case "rc5":
		for i := 0; i <= cfg.Repeat; i++ {
			synth.RC5Code(s, cfg.Device, cfg.Function, s.RC5Toggle)
			s.RC5Toggle ^= 1
		}
	case "hold":
		synth.Hold(s, cfg.Function != 0, cfg.Device)
	case "test":
		synth.Test(s, cfg.Device, cfg.Function)
	default:
		return fmt.Errorf("unknown protocol %q", cfg.Protocol)
	}
	return nil
}

func output(cfg *config.Send, s *synth.Session) error {
	if s.Config.MarkEnd > 0 {
		s.Pad(26, 23)
	}

	if cfg.Output == "default" {
		return playback(s)
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	if err := au.WriteHeader(f, audiodev.SampleRate, 2); err != nil {
		return err
	}
	for _, v := range s.Samples() {
		if err := au.WriteSample(f, v); err != nil {
			return err
		}
	}
	return au.PatchDataSize(f, int64(len(s.Samples())*2))
}

func playback(s *synth.Session) error {
	dev, err := audiodev.OpenPlaybackStereo()
	if err != nil {
		return fmt.Errorf("opening sound card: %w", err)
	}
	defer dev.Close()

	ctx := context.Background()
	for _, v := range s.Samples() {
		if err := dev.WriteFrame(ctx, int(v)); err != nil {
			return err
		}
	}
	return dev.Flush()
}
