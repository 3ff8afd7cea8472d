package pcm

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/user-none/go-chip-tda8425"
)

// Reader decodes interleaved raw frames of 1 to tda8425.InputCount channels.
type Reader struct {
	r        *bufio.Reader
	format   Format
	channels int
	buf      []byte
}

// NewReader returns a Reader of channels interleaved samples per frame.
func NewReader(r io.Reader, format Format, channels int) (*Reader, error) {
	if channels < 1 || channels > tda8425.InputCount {
		return nil, fmt.Errorf("%w: %d", ErrChannelCount, channels)
	}
	return &Reader{
		r:        bufio.NewReader(r),
		format:   format,
		channels: channels,
		buf:      make([]byte, format.Size()*channels),
	}, nil
}

// ReadFrames fills dst with decoded frames and returns how many it read.
// Input slots beyond the channel count are 0. At the end of the stream it
// returns io.EOF, or io.ErrUnexpectedEOF if the stream ends inside a frame.
func (r *Reader) ReadFrames(dst []tda8425.Frame) (int, error) {
	size := r.format.Size()
	for n := range dst {
		if _, err := io.ReadFull(r.r, r.buf); err != nil {
			return n, err
		}
		var frame tda8425.Frame
		for ch := 0; ch < r.channels; ch++ {
			frame[ch] = r.format.Decode(r.buf[ch*size:])
		}
		dst[n] = frame
	}
	return len(dst), nil
}

// Writer encodes stereo frames as interleaved raw samples.
// Call Flush when done.
type Writer struct {
	w      *bufio.Writer
	format Format
	buf    []byte
}

// NewWriter returns a Writer of stereo frames in format.
func NewWriter(w io.Writer, format Format) *Writer {
	return &Writer{
		w:      bufio.NewWriter(w),
		format: format,
		buf:    make([]byte, format.Size()*tda8425.StereoCount),
	}
}

// WriteFrames encodes frames, left sample first.
func (w *Writer) WriteFrames(frames []tda8425.Stereo) error {
	size := w.format.Size()
	for _, frame := range frames {
		w.format.Encode(w.buf, frame[tda8425.Left])
		w.format.Encode(w.buf[size:], frame[tda8425.Right])
		if _, err := w.w.Write(w.buf); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered samples.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// IsEnd reports whether err marks the end of a frame stream, whole or
// truncated.
func IsEnd(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
