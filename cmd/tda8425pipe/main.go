// Command tda8425pipe runs a sample stream through an emulated TDA8425.
//
// Raw interleaved samples are read from stdin and stereo samples in the same
// format are written to stdout, unless -i or -o name a wav (or mp3 input)
// file. Options are applied in command line order.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/user-none/go-chip-tda8425/internal/pcm"
	"github.com/user-none/go-chip-tda8425/internal/pipe"
	"github.com/user-none/go-chip-tda8425/internal/translate"
)

const usageTables = `
FORMAT: U8 S8 U16_LE U16_BE S16_LE S16_BE U32_LE U32_BE S32_LE S32_BE
        U64_LE U64_BE S64_LE S64_BE FLOAT_LE FLOAT_BE FLOAT64_LE FLOAT64_BE
MODE: linear (default), mono, pseudo, spatial
SELECTOR: S1 (default), A1, B1, S2, A2, B2
PSEUDO_PRESET: 1 = 15/15 nF, 2 = 5.6/47 nF, 3 = 5.6/68 nF
BASS: -12 to +15 dB, step 3
TREBLE: -12 to +12 dB, step 3
VOLUME: -64 to +6 dB, step 2, -128 mutes
`

func intFunc(set func(int) error) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		return set(n)
	}
}

func floatFunc(set func(float64) error) func(string) error {
	return func(s string) error {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		return set(x)
	}
}

func main() {
	var input string
	var output string
	var wavBits int
	var verbose bool

	opts := pipe.NewOptions()

	flag.Func("script", "Starlark settings `file`", func(name string) error {
		return opts.LoadScript(name, nil)
	})
	for _, name := range []string{"b", "bass"} {
		flag.Func(name, "Bass gain [dB]; default 0", intFunc(opts.SetBass))
	}
	for _, name := range []string{"c", "channels"} {
		flag.Func(name, "Number of input channels; default 1, max 4", intFunc(opts.SetChannels))
	}
	for _, name := range []string{"f", "format"} {
		flag.Func(name, "Sample format; default U8", opts.SetFormat)
	}
	for _, name := range []string{"m", "mode"} {
		flag.Func(name, "Stereo mode; default linear", opts.SetMode)
	}
	for _, name := range []string{"r", "rate"} {
		flag.Func(name, "Sample rate [Hz]; default 44100", floatFunc(opts.SetRate))
	}
	for _, name := range []string{"s", "selector"} {
		flag.Func(name, "Input source selector; default S1", opts.SetSelector)
	}
	for _, name := range []string{"t", "treble"} {
		flag.Func(name, "Treble gain [dB]; default 0", intFunc(opts.SetTreble))
	}
	for _, name := range []string{"v", "volume"} {
		flag.Func(name, "Volume gain [dB]; default 0", intFunc(opts.SetVolume))
	}
	flag.Func("volume-left", "Left volume gain [dB]; default 0", intFunc(opts.SetVolumeLeft))
	flag.Func("volume-right", "Right volume gain [dB]; default 0", intFunc(opts.SetVolumeRight))
	flag.Func("pseudo-c1", "Pseudo-stereo C1 [F]; default 15e-9", floatFunc(opts.SetPseudoC1))
	flag.Func("pseudo-c2", "Pseudo-stereo C2 [F]; default 15e-9", floatFunc(opts.SetPseudoC2))
	flag.Func("pseudo-preset", "Pseudo-stereo capacitor preset; default 1", intFunc(opts.SetPseudoPreset))
	for _, reg := range []string{"VL", "VR", "BA", "TR", "SF"} {
		reg := reg
		flag.Func("reg-"+reg, "Raw "+reg+" register, [0x]HEX", func(value string) error {
			return opts.SetRegister(reg, value)
		})
	}
	flag.Func("config", "Analog constants: datasheet or alternate", opts.SetConfig)
	flag.StringVar(&input, "i", "-", "Input wav or mp3 file, - for raw stdin")
	flag.StringVar(&output, "o", "-", "Output wav file, - for raw stdout")
	flag.IntVar(&wavBits, "wav-bits", 16, "Output wav bit depth: 16, 24 or 32")
	flag.BoolVar(&verbose, "verbose", false, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(flag.CommandLine.Output(), usageTables)
	}

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var src pipe.FrameSource
	if input == "-" {
		r, err := pcm.NewReader(os.Stdin, opts.Format, opts.Channels)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		src = r
	} else {
		clip, err := readClip(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		if !opts.RateSet() {
			opts.Rate = float64(clip.SampleRate)
		}
		opts.Channels = clip.Channels
		src = clip.Source()
	}

	var sink pipe.FrameSink
	var finish func() error
	if output == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatalf("%v: refusing to write binary samples to a terminal", os.Args[0])
		}
		w := pcm.NewWriter(os.Stdout, opts.Format)
		sink, finish = w, w.Flush
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		w, err := pcm.NewWAVWriter(ouf, int(opts.Rate), wavBits)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		sink, finish = w, w.Close
	}

	if verbose {
		log.Printf("%v (%v)", opts.Summary(), translate.Language())
	}

	frames, err := pipe.Run(opts, src, sink)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	if err := finish(); err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	if verbose {
		log.Printf("%v frames, %.3f s", frames, float64(frames)/opts.Rate)
	}
}

// readClip decodes a wav or mp3 file, chosen by extension.
func readClip(name string) (*pcm.Clip, error) {
	inf, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer inf.Close()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		return pcm.ReadMP3(inf)
	case ".wav":
		return pcm.ReadWAV(inf)
	}

	// sniff the RIFF header of unknown extensions
	var magic [4]byte
	if _, err := io.ReadFull(inf, magic[:]); err != nil {
		return nil, err
	}
	if _, err := inf.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if string(magic[:]) == "RIFF" {
		return pcm.ReadWAV(inf)
	}
	return pcm.ReadMP3(inf)
}
