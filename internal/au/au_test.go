package au

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seekBuffer struct {
	bytes.Buffer
	pos int64
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	if whence == 0 {
		s.pos = offset
	}
	return s.pos, nil
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	b := s.Buffer.Bytes()
	for int64(len(b)) < s.pos+int64(len(p)) {
		b = append(b, 0)
	}
	copy(b[s.pos:], p)
	s.Buffer.Reset()
	s.Buffer.Write(b)
	s.pos += int64(len(p))
	return len(p), nil
}

func TestWriteHeaderThenReadHeaderRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, CanonicalSampleRate, 1))

	hdr, err := ReadHeader(&buf, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(HeaderSize), hdr.DataOffset)
	assert.Equal(t, uint32(StreamingSize), hdr.DataSize)
	assert.Equal(t, uint32(EncodingPCM16), hdr.Encoding)
	assert.Equal(t, uint32(CanonicalSampleRate), hdr.SampleRate)
	assert.Equal(t, uint32(1), hdr.Channels)
}

func TestReadHeaderRejectsWrongChannelCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, CanonicalSampleRate, 1))
	_, err := ReadHeader(&buf, 2)
	assert.Error(t, err)
}

func TestReadHeaderRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 24, 0, 0, 0, 0, 0, 0, 0, 3, 0, 0, 0xAC, 0x44, 0, 0, 0, 1})
	_, err := ReadHeader(&buf, 1)
	assert.Error(t, err)
}

func TestWriteSampleThenReadSampleRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSample(&buf, -1234))
	v, err := ReadSample(&buf)
	require.NoError(t, err)
	assert.Equal(t, int16(-1234), v)
}

func TestPatchDataSizeRewritesDataSizeField(t *testing.T) {
	sb := &seekBuffer{}
	require.NoError(t, WriteHeader(sb, CanonicalSampleRate, 1))
	require.NoError(t, WriteSample(sb, 7))
	require.NoError(t, WriteSample(sb, 8))
	require.NoError(t, PatchDataSize(sb, 4))

	r := bytes.NewReader(sb.Bytes())
	hdr, err := ReadHeader(r, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(4), hdr.DataSize)
}
