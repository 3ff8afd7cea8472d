package pcm

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/user-none/go-chip-tda8425"
)

// Clip is a fully decoded recording.
type Clip struct {
	SampleRate int
	Channels   int // channels stored in Frames, at most tda8425.InputCount
	Frames     []tda8425.Frame
}

// Source returns a frame source reading the clip from the start.
func (c *Clip) Source() *ClipReader {
	return &ClipReader{clip: c}
}

// ClipReader hands out the frames of a Clip.
type ClipReader struct {
	clip *Clip
	pos  int
}

// ReadFrames copies the next frames into dst. It returns io.EOF once every
// frame has been read.
func (r *ClipReader) ReadFrames(dst []tda8425.Frame) (int, error) {
	if r.pos >= len(r.clip.Frames) {
		return 0, io.EOF
	}
	n := copy(dst, r.clip.Frames[r.pos:])
	r.pos += n
	return n, nil
}

// ReadWAV decodes a 16, 24 or 32 bit PCM wav file. Channels past
// tda8425.InputCount are dropped.
func ReadWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return nil, ErrWAVInvalid
	}

	bits := int(dec.BitDepth)
	switch bits {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrWAVBitDepth, bits)
	}

	numChans := int(dec.NumChans)
	if numChans < 1 {
		return nil, fmt.Errorf("%w: %d", ErrWAVChannels, numChans)
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	clip := &Clip{
		SampleRate: int(dec.SampleRate),
		Channels:   min(numChans, tda8425.InputCount),
		Frames:     make([]tda8425.Frame, len(buf.Data)/numChans),
	}

	scale := math.Ldexp(1, bits-1)
	for i := range clip.Frames {
		samples := buf.Data[i*numChans:]
		for ch := 0; ch < clip.Channels; ch++ {
			clip.Frames[i][ch] = float64(samples[ch]) / scale
		}
	}
	return clip, nil
}

// WAVWriter streams stereo frames into a PCM wav file.
// Close writes the final chunk sizes; it does not close the underlying file.
type WAVWriter struct {
	enc     *wav.Encoder
	bits    int
	buf     *audio.IntBuffer
	started bool
}

// NewWAVWriter prepares a stereo wav stream of 16, 24 or 32 bit samples.
func NewWAVWriter(w io.WriteSeeker, sampleRate, bits int) (*WAVWriter, error) {
	switch bits {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrWAVBitDepth, bits)
	}

	const wavFormatPCM = 1
	return &WAVWriter{
		enc:  wav.NewEncoder(w, sampleRate, bits, tda8425.StereoCount, wavFormatPCM),
		bits: bits,
		buf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: tda8425.StereoCount,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: bits,
		},
	}, nil
}

// WriteFrames quantizes and appends frames to the file.
func (w *WAVWriter) WriteFrames(frames []tda8425.Stereo) error {
	w.started = true
	w.buf.Data = w.buf.Data[:0]
	for _, frame := range frames {
		w.buf.Data = append(w.buf.Data,
			int(quantize(frame[tda8425.Left], w.bits)),
			int(quantize(frame[tda8425.Right], w.bits)))
	}
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// Close writes the header and chunk sizes.
func (w *WAVWriter) Close() error {
	// the encoder emits the header on its first write
	if !w.started {
		if err := w.WriteFrames(nil); err != nil {
			return err
		}
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}
