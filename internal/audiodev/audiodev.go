// Package audiodev defines the sound-card contracts the filter pipeline
// and synthesizer read from and write to, plus a github.com/gordonklaus/
// portaudio-backed implementation of both.
package audiodev

import "context"

// FrameSource is anything that can be read as a stream of signed 16-bit
// PCM samples: a live capture device, or a file played back at its own
// pace. ReadFrame blocks until a sample is available and returns false
// once the source is exhausted.
type FrameSource interface {
	ReadFrame(ctx context.Context) (sample int, ok bool, err error)
	Close() error
}

// FrameSink accepts a stream of 16-bit PCM samples for playback.
type FrameSink interface {
	WriteFrame(ctx context.Context, sample int) error
	Close() error
}
