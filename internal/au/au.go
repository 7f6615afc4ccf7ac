// Package au implements the fixed 24-byte big-endian AU header and 16-bit
// PCM body used throughout soiral for recorded and logged signals.
package au

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the AU file magic number, ".snd" in ASCII.
const Magic = 0x2E736E64

// EncodingPCM16 is the AU "encoding" field value for 16-bit linear PCM,
// the only encoding soiral reads or writes.
const EncodingPCM16 = 3

// HeaderSize is the fixed size of the AU header in bytes. soiral never
// writes the optional annotation block some AU files carry between the
// header and the data offset.
const HeaderSize = 24

// CanonicalSampleRate is the sample rate every capture is expected to use.
// ReadHeader accepts a file at any rate; filter.NewRead rejects a file at
// a different rate with an error and does not read it.
const CanonicalSampleRate = 44100

// StreamingSize is written into the header's data-size field while a
// stream is still being logged; PatchDataSize back-patches the real size.
const StreamingSize = 0xFFFFFFFF

// Header holds the 5 big-endian uint32 fields that follow the magic
// number in an AU file header.
type Header struct {
	DataOffset uint32
	DataSize   uint32
	Encoding   uint32
	SampleRate uint32
	Channels   uint32
}

// ReadHeader reads and validates a 24-byte AU header, returning an error if
// the magic, encoding, or channel count make the file unusable. A
// non-canonical sample rate is not an error - see CanonicalSampleRate.
func ReadHeader(r io.Reader, wantChannels uint32) (Header, error) {
	var raw [6]uint32
	if err := binary.Read(r, binary.BigEndian, &raw); err != nil {
		return Header{}, fmt.Errorf("au: reading header: %w", err)
	}
	if raw[0] != Magic {
		return Header{}, fmt.Errorf("au: not an AU file")
	}
	if raw[3] != EncodingPCM16 {
		return Header{}, fmt.Errorf("au: not 16-bit linear PCM")
	}
	if wantChannels != 0 && raw[5] != wantChannels {
		return Header{}, fmt.Errorf("au: %d channels, expected %d", raw[5], wantChannels)
	}
	return Header{
		DataOffset: raw[1],
		DataSize:   raw[2],
		Encoding:   raw[3],
		SampleRate: raw[4],
		Channels:   raw[5],
	}, nil
}

// WriteHeader writes a streaming AU header (data size left as
// StreamingSize) for the given sample rate and channel count.
func WriteHeader(w io.Writer, sampleRate, channels uint32) error {
	raw := [6]uint32{Magic, HeaderSize, StreamingSize, EncodingPCM16, sampleRate, channels}
	return binary.Write(w, binary.BigEndian, &raw)
}

// PatchDataSize rewrites the data-size field of an AU header already
// written to w, given the number of bytes written to the body. w must
// support io.Seeker in addition to io.Writer.
func PatchDataSize(w io.WriteSeeker, bodyBytes int64) error {
	if _, err := w.Seek(2*4, io.SeekStart); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, uint32(bodyBytes))
}

// ReadSample reads one big-endian signed 16-bit sample.
func ReadSample(r io.Reader) (int16, error) {
	var v int16
	err := binary.Read(r, binary.BigEndian, &v)
	return v, err
}

// WriteSample writes one big-endian signed 16-bit sample.
func WriteSample(w io.Writer, v int16) error {
	return binary.Write(w, binary.BigEndian, v)
}
