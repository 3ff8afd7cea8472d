package pcm

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user-none/go-chip-tda8425"
)

func TestReaderChannels(t *testing.T) {
	assert := assert.New(t)

	_, err := NewReader(&bytes.Buffer{}, U8, 0)
	assert.ErrorIs(err, ErrChannelCount)
	_, err = NewReader(&bytes.Buffer{}, U8, tda8425.InputCount+1)
	assert.ErrorIs(err, ErrChannelCount)
}

func TestReaderFrames(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// three channels of S8: two whole frames
	input := []byte{0x40, 0xC0, 0x20, 0x00, 0x7F, 0x80}
	r, err := NewReader(bytes.NewReader(input), S8, 3)
	require.NoError(err)

	frames := make([]tda8425.Frame, 4)
	n, err := r.ReadFrames(frames)
	assert.Equal(2, n)
	assert.ErrorIs(err, io.EOF)
	assert.Equal(tda8425.Frame{0.5, -0.5, 0.25, 0}, frames[0])
	assert.Equal(tda8425.Frame{0, 127.0 / 128, -1, 0}, frames[1])

	n, err = r.ReadFrames(frames)
	assert.Equal(0, n)
	assert.ErrorIs(err, io.EOF)
}

func TestReaderPartialFrame(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	input := []byte{0x00, 0x40, 0x00, 0xC0, 0x00}
	r, err := NewReader(bytes.NewReader(input), S16LE, 2)
	require.NoError(err)

	frames := make([]tda8425.Frame, 2)
	n, err := r.ReadFrames(frames)
	assert.Equal(1, n)
	assert.ErrorIs(err, io.ErrUnexpectedEOF)
	assert.True(IsEnd(err))
	assert.Equal(tda8425.Frame{0.5, -0.5}, frames[0])
}

func TestReaderFillsBuffer(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r, err := NewReader(bytes.NewReader(make([]byte, 10)), U8, 1)
	require.NoError(err)

	frames := make([]tda8425.Frame, 4)
	n, err := r.ReadFrames(frames)
	assert.Equal(4, n)
	assert.NoError(err)
	assert.Equal(tda8425.Frame{-1}, frames[3])
}

func TestWriterFrames(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	out := &bytes.Buffer{}
	w := NewWriter(out, S16BE)
	require.NoError(w.WriteFrames([]tda8425.Stereo{{0.5, -0.5}, {0, 1.5}}))
	assert.Equal(0, out.Len(), "buffered until flush")

	require.NoError(w.Flush())
	assert.Equal([]byte{0x40, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x7F, 0xFF}, out.Bytes())
}

func TestReaderWriterRoundTrip(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	frames := []tda8425.Stereo{{0.25, -0.25}, {0.5, 0.125}, {-1, 0}}
	for _, format := range Formats() {
		out := &bytes.Buffer{}
		w := NewWriter(out, format)
		require.NoError(w.WriteFrames(frames))
		require.NoError(w.Flush())
		assert.Equal(len(frames)*2*format.Size(), out.Len())

		r, err := NewReader(out, format, 2)
		require.NoError(err)
		got := make([]tda8425.Frame, len(frames)+1)
		n, err := r.ReadFrames(got)
		assert.Equal(len(frames), n)
		assert.ErrorIs(err, io.EOF)
		for i, frame := range frames {
			assert.Equal(tda8425.Frame{frame[0], frame[1]}, got[i], format.String())
		}
	}
}

func TestIsEnd(t *testing.T) {
	assert := assert.New(t)

	assert.True(IsEnd(io.EOF))
	assert.True(IsEnd(io.ErrUnexpectedEOF))
	assert.False(IsEnd(nil))
	assert.False(IsEnd(io.ErrClosedPipe))
}
