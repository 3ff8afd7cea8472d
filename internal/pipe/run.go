package pipe

import (
	"github.com/user-none/go-chip-tda8425"
	"github.com/user-none/go-chip-tda8425/internal/pcm"
)

// BlockSize is the number of frames processed per chip call.
const BlockSize = 1024

// FrameSource supplies input frames. ReadFrames returns the number of
// whole frames stored in dst; io.EOF or io.ErrUnexpectedEOF end the stream.
type FrameSource interface {
	ReadFrames(dst []tda8425.Frame) (int, error)
}

// FrameSink consumes output frames.
type FrameSink interface {
	WriteFrames(frames []tda8425.Stereo) error
}

// NewChip builds and starts a chip with the register values of opts.
func NewChip(opts *Options) *tda8425.Chip {
	chip := tda8425.New(opts.Rate, opts.PseudoC1, opts.PseudoC2, opts.Config)
	chip.Write(tda8425.RegVL, opts.VL)
	chip.Write(tda8425.RegVR, opts.VR)
	chip.Write(tda8425.RegBA, opts.BA)
	chip.Write(tda8425.RegTR, opts.TR)
	chip.Write(tda8425.RegSF, opts.SF)
	chip.Start()
	return chip
}

// Run streams src through a new chip into dst until src ends, and returns
// the number of frames written. A truncated trailing frame is dropped.
func Run(opts *Options, src FrameSource, dst FrameSink) (frames int, err error) {
	chip := NewChip(opts)
	defer chip.Stop()

	in := make([]tda8425.Frame, BlockSize)
	out := make([]tda8425.Stereo, BlockSize)

	for {
		n, rerr := src.ReadFrames(in)
		if n > 0 {
			chip.ProcessBlock(in[:n], out[:n])
			if err = dst.WriteFrames(out[:n]); err != nil {
				return
			}
			frames += n
		}
		if rerr != nil {
			if !pcm.IsEnd(rerr) {
				err = rerr
			}
			return
		}
	}
}
