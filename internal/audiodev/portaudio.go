package audiodev

import (
	"context"
	"fmt"
	"io"

	"github.com/gordonklaus/portaudio"
)

// SampleRate is the sound-card rate used throughout this package; it
// matches the one assumed by internal/synth's carrier timing.
const SampleRate = 44100

// framesPerBuffer bounds the latency of a single portaudio callback: a
// capture's ReadFrame blocks no longer than this many samples take to
// arrive.
const framesPerBuffer = 256

// Device streams int16 samples to or from the sound card via portaudio,
// mono or, when opened with OpenPlaybackStereo, interleaved stereo,
// buffering one hardware period at a time.
type Device struct {
	stream *portaudio.Stream
	buf    []int16
	pos    int
	filled int
}

// OpenCapture opens the default input device for reading.
func OpenCapture() (*Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audiodev: %w", err)
	}
	d := &Device{buf: make([]int16, framesPerBuffer)}
	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, framesPerBuffer, d.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audiodev: %w", err)
	}
	d.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audiodev: %w", err)
	}
	return d, nil
}

// OpenPlayback opens the default output device for writing mono samples.
func OpenPlayback() (*Device, error) {
	return openPlayback(1)
}

// OpenPlaybackStereo opens the default output device for writing
// left/right-interleaved samples, the form synth.Session.Samples
// produces.
func OpenPlaybackStereo() (*Device, error) {
	return openPlayback(2)
}

func openPlayback(channels int) (*Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audiodev: %w", err)
	}
	d := &Device{buf: make([]int16, framesPerBuffer*channels)}
	stream, err := portaudio.OpenDefaultStream(0, channels, SampleRate, framesPerBuffer, d.buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audiodev: %w", err)
	}
	d.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audiodev: %w", err)
	}
	return d, nil
}

// ReadFrame returns the next captured sample, refilling its buffer from
// the device whenever it runs dry. ctx cancellation is checked between
// buffer refills, not mid-read, since portaudio's Read call itself does
// not accept a context.
func (d *Device) ReadFrame(ctx context.Context) (int, bool, error) {
	if d.pos >= d.filled {
		select {
		case <-ctx.Done():
			return 0, false, ctx.Err()
		default:
		}
		if err := d.stream.Read(); err != nil {
			return 0, false, fmt.Errorf("audiodev: %w", err)
		}
		d.pos = 0
		d.filled = len(d.buf)
	}
	sample := int(d.buf[d.pos])
	d.pos++
	return sample, true, nil
}

// WriteFrame buffers sample for playback, flushing a full period to the
// device whenever the buffer fills.
func (d *Device) WriteFrame(ctx context.Context, sample int) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	d.buf[d.pos] = int16(sample)
	d.pos++
	if d.pos == len(d.buf) {
		if err := d.stream.Write(); err != nil {
			return fmt.Errorf("audiodev: %w", err)
		}
		d.pos = 0
	}
	return nil
}

// Flush writes out any partially-filled playback buffer, padding with
// silence.
func (d *Device) Flush() error {
	if d.pos == 0 {
		return nil
	}
	for i := d.pos; i < len(d.buf); i++ {
		d.buf[i] = 0
	}
	err := d.stream.Write()
	d.pos = 0
	return err
}

// Close stops and releases the underlying stream.
func (d *Device) Close() error {
	err := d.stream.Close()
	portaudio.Terminate()
	return err
}

var _ FrameSource = (*Device)(nil)
var _ FrameSink = (*Device)(nil)
var _ io.Closer = (*Device)(nil)
