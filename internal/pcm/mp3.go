package pcm

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/user-none/go-chip-tda8425"
)

// ReadMP3 decodes an mp3 stream into a stereo Clip on source 1.
func ReadMP3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMP3Decode, err)
	}

	// The decoder always produces 16 bit little endian stereo, even for
	// mono sources.
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMP3Decode, err)
	}

	const frameSize = 4
	clip := &Clip{
		SampleRate: dec.SampleRate(),
		Channels:   tda8425.StereoCount,
		Frames:     make([]tda8425.Frame, len(data)/frameSize),
	}
	for i := range clip.Frames {
		b := data[i*frameSize:]
		clip.Frames[i][tda8425.Source1Left] = float64(int16(binary.LittleEndian.Uint16(b))) / 32768
		clip.Frames[i][tda8425.Source1Right] = float64(int16(binary.LittleEndian.Uint16(b[2:]))) / 32768
	}
	return clip, nil
}
