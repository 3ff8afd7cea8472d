package pcm

import (
	"errors"

	"github.com/user-none/go-chip-tda8425/internal/translate"
)

var f = translate.From

var (
	ErrUnknownFormat = errors.New(f("unknown sample format"))
	ErrChannelCount  = errors.New(f("channel count out of range"))

	// Container errors
	ErrWAVInvalid  = errors.New(f("not a valid wav file"))
	ErrWAVBitDepth = errors.New(f("unsupported wav bit depth"))
	ErrWAVChannels = errors.New(f("unsupported wav channel count"))
	ErrMP3Decode   = errors.New(f("mp3 decode"))
)
